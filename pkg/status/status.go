// Package status defines the client-facing claim status vocabulary and its
// normalization down to the smaller vocabulary the orchestration backend
// filters by.
package status

// Token is a client-facing claim status. The client vocabulary is a superset
// of the backend's: the presentation tabs (Active, Expired, Completed) are
// derived client-side, e.g. from time-based expiry, and the backend has no
// filter for them.
type Token string

const (
	// Backend-native orchestration statuses. These pass through Normalize
	// unchanged.
	Pending   Token = "pending"
	Claimed   Token = "claimed"
	Stalled   Token = "stalled"
	Cancelled Token = "cancelled"

	// Presentation-only tabs with no backend filter equivalent.
	Active    Token = "active"
	Expired   Token = "expired"
	Completed Token = "completed"
)

// Tokens lists every defined client-facing status token.
var Tokens = []Token{Pending, Claimed, Stalled, Cancelled, Active, Expired, Completed}

// Normalize maps a client-facing token to the backend filter value. Backend
// native tokens map to themselves with ok=true. Presentation-only tabs and
// the empty token degrade to "no filter" (ok=false): sending them to the
// backend would either error or silently match nothing. Tokens outside the
// defined vocabulary also degrade to no filter, so an unmapped addition can
// never leak to the backend.
//
// Normalize is idempotent: its outputs are either empty or backend-native,
// both of which normalize to themselves.
func Normalize(t Token) (Token, bool) {
	switch t {
	case Pending, Claimed, Stalled, Cancelled:
		return t, true
	case Active, Expired, Completed:
		return "", false
	default:
		return "", false
	}
}
