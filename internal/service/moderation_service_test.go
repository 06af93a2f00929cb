package service

import (
	"testing"

	"github.com/dterira/Quorable/config"
)

func TestModerationService_Disabled(t *testing.T) {
	svc, err := NewModerationService(&config.Config{})
	if err != nil {
		t.Fatalf("construct without key: %v", err)
	}

	// Without an API key reviews are dropped and shutdown is a no-op.
	svc.ReviewAsync("answer", 1, "some content")
	if err := svc.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}
