package quota

import (
	"context"

	"github.com/dmitrymomot/textgate/pkg/plan"
)

// Result describes the outcome of a consume attempt.
type Result struct {
	Allowed   bool
	Used      int64 // post-increment count when allowed, current count when rejected
	Limit     int64 // plan.Unlimited means no cap
	Remaining int64 // plan.Unlimited when the cap is unlimited
}

// Ledger is the durable per-identity, per-period consumption counter.
//
// CheckAndConsume is the single serialization point for concurrent
// requests from the same identity: implementations must make the
// read-check-increment sequence effectively atomic so that at most
// Limit requests are admitted per period under arbitrary interleaving.
// A client-side read-modify-write is not an acceptable implementation.
//
// Rollover is lazy: a record for a different period is never read as
// current, and stale records are left to expire on their own.
type Ledger interface {
	// CheckAndConsume admits the request and increments the counter,
	// or rejects it without mutating state when the cap is reached.
	CheckAndConsume(ctx context.Context, identity string, p plan.Plan, period Period) (Result, error)

	// Usage returns the current count without consuming.
	Usage(ctx context.Context, identity string, period Period) (int64, error)

	// Reset zeroes the identity's count for the period. Used when a
	// paid subscription activates so the new cap is immediately usable.
	Reset(ctx context.Context, identity string, period Period) error
}
