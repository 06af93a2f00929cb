package access

import (
	"testing"
	"time"
)

func TestViewable(t *testing.T) {
	privated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		viewerID   uint
		ownerID    uint
		privatedAt *time.Time
		approved   int64
		want       bool
	}{
		{"owner on privated answer, no transactions", 1, 1, &privated, 0, true},
		{"owner on privated answer, with transactions", 1, 1, &privated, 3, true},
		{"owner on public answer", 1, 1, nil, 0, true},
		{"stranger on public answer", 2, 1, nil, 0, true},
		{"stranger on privated answer, no transactions", 2, 1, &privated, 0, false},
		{"stranger on privated answer, one approved transaction", 2, 1, &privated, 1, true},
		{"stranger on privated answer, many approved transactions", 2, 1, &privated, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Viewable(tt.viewerID, tt.ownerID, tt.privatedAt, tt.approved)
			if got != tt.want {
				t.Errorf("Viewable(%d, %d, %v, %d) = %v, want %v",
					tt.viewerID, tt.ownerID, tt.privatedAt, tt.approved, got, tt.want)
			}
		})
	}
}

// Walks the lifecycle from the worked example: U2 views U1's privated
// answer before approval, after approval, and U1 views it throughout.
func TestViewable_ApprovalLifecycle(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	const owner, buyer = 1, 2

	if Viewable(buyer, owner, &t0, 0) {
		t.Error("buyer with only a pending transaction should not view")
	}
	if !Viewable(buyer, owner, &t0, 1) {
		t.Error("buyer should view once the transaction is approved")
	}
	if !Viewable(owner, owner, &t0, 0) {
		t.Error("owner should always view")
	}
}
