package access

import "time"

// Viewable decides whether a viewer may see a privated answer's gated
// content. The policy, in order of precedence:
//
//   - the owner always sees their own answer, regardless of payment state
//   - a non-private answer (privatedAt nil) is visible to anyone
//   - otherwise visibility requires at least one approved transaction by
//     the viewer against this answer
//
// approvedTransactions must be the count of the viewer's own transactions
// with a non-nil approval timestamp; pending transactions never grant
// access. Callers must not evaluate this for anonymous viewers — with no
// viewer identity there is no verdict at all, which is distinct from false.
func Viewable(viewerID, ownerID uint, privatedAt *time.Time, approvedTransactions int64) bool {
	return viewerID == ownerID ||
		privatedAt == nil ||
		approvedTransactions > 0
}
