package controller

import "testing"

func TestWantsAnswers(t *testing.T) {
	cases := []struct {
		name string
		with []string
		want bool
	}{
		{"empty", nil, false},
		{"direct", []string{"answers"}, true},
		{"nested only", []string{"answers.user"}, true},
		{"unrelated", []string{"user", "tags"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := wantsAnswers(tc.with); got != tc.want {
				t.Errorf("wantsAnswers(%v) = %v, want %v", tc.with, got, tc.want)
			}
		})
	}
}
