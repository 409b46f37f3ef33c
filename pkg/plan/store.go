package plan

import "context"

// Store is the durable mapping from identity to current tier.
// It is mutated only by the billing webhook service; the request gate
// only reads from it. Absence of a record means the free tier, so Get
// never returns a not-found error. Storage failures are returned as-is
// and the caller decides the fallback policy.
type Store interface {
	// Get returns the identity's current tier, or TierFree when no
	// record exists.
	Get(ctx context.Context, identity string) (Tier, error)

	// Set creates or overwrites the identity's tier. Idempotent,
	// last writer wins.
	Set(ctx context.Context, identity string, tier Tier) error
}
