package billing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/textgate/pkg/plan"
	"github.com/dmitrymomot/textgate/pkg/quota"
)

// CheckoutOptions carries optional checkout session parameters.
type CheckoutOptions struct {
	Email      string // pre-fill billing email if known
	SuccessURL string // redirect after successful payment
	CancelURL  string // redirect if the customer backs out
}

// Service applies payment provider lifecycle events to the plan store.
// It is the single writer of paid tiers: the request gate only ever
// reads the store this service maintains.
type Service struct {
	catalog  *plan.Catalog
	provider Provider
	plans    plan.Store
	ledger   quota.Ledger
	log      *slog.Logger
}

// NewService creates a Service. Panics if required dependencies are nil
// to fail fast during initialization.
func NewService(catalog *plan.Catalog, provider Provider, plans plan.Store, ledger quota.Ledger, log *slog.Logger) *Service {
	if catalog == nil {
		panic("billing: plan catalog is required")
	}
	if provider == nil {
		panic("billing: provider is required")
	}
	if plans == nil {
		panic("billing: plan store is required")
	}
	if ledger == nil {
		panic("billing: quota ledger is required")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		catalog:  catalog,
		provider: provider,
		plans:    plans,
		ledger:   ledger,
		log:      log,
	}
}

// Checkout creates a hosted checkout session for the identity to buy a
// tier. The free tier is not purchasable.
func (s *Service) Checkout(ctx context.Context, identity string, tier plan.Tier, opts CheckoutOptions) (*CheckoutLink, error) {
	if identity == "" {
		return nil, ErrMissingIdentity
	}

	p, ok := s.catalog.Get(tier)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTier, tier)
	}
	if !p.Paid() {
		return nil, ErrTierNotPurchasable
	}

	return s.provider.CreateCheckoutLink(ctx, CheckoutRequest{
		Identity:   identity,
		Tier:       p.Tier,
		PriceID:    p.PriceID,
		Email:      opts.Email,
		SuccessURL: opts.SuccessURL,
		CancelURL:  opts.CancelURL,
	})
}

// HandleWebhook verifies and applies one provider event.
//
// Verification happens before anything else; a signature failure
// returns ErrWebhookVerificationFailed with no state change. Both
// transitions are pure overwrites of the plan store, so redelivered
// events are naturally idempotent. The provider owns retry/backoff:
// a non-nil return here surfaces as a non-2xx response and triggers
// redelivery.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhook(ctx, payload, signature)
	if err != nil {
		return err
	}

	switch event.Type {
	case EventSubscriptionActivated:
		tier := event.Tier
		if _, ok := s.catalog.Get(tier); !ok {
			// Custom data missing or stale; fall back to the price id.
			p, ok := s.catalog.ByPriceID(event.PriceID)
			if !ok {
				return fmt.Errorf("%w: tier %q, price %q (event %s)",
					ErrUnknownTier, event.Tier, event.PriceID, event.EventID)
			}
			tier = p.Tier
		}
		if event.Identity == "" {
			return fmt.Errorf("%w (event %s)", ErrMissingIdentity, event.EventID)
		}

		if err := s.plans.Set(ctx, event.Identity, tier); err != nil {
			return fmt.Errorf("failed to apply subscription activation: %w", err)
		}

		// Zero the current period so the paid cap is immediately usable
		// instead of being burned down by earlier free-tier consumption.
		period := quota.CurrentPeriod(time.Now())
		if err := s.ledger.Reset(ctx, event.Identity, period); err != nil {
			return fmt.Errorf("failed to reset quota after activation: %w", err)
		}

		s.log.InfoContext(ctx, "subscription activated",
			slog.String("identity", event.Identity),
			slog.String("tier", string(tier)),
			slog.String("event_id", event.EventID))

	case EventSubscriptionCancelled:
		if event.Identity == "" {
			return fmt.Errorf("%w (event %s)", ErrMissingIdentity, event.EventID)
		}

		// Only the effective cap changes going forward; the current
		// period's consumed count is left untouched.
		if err := s.plans.Set(ctx, event.Identity, plan.TierFree); err != nil {
			return fmt.Errorf("failed to apply subscription cancellation: %w", err)
		}

		s.log.InfoContext(ctx, "subscription cancelled",
			slog.String("identity", event.Identity),
			slog.String("event_id", event.EventID))

	default:
		s.log.DebugContext(ctx, "ignoring billing event",
			slog.String("provider_event", event.ProviderEvent),
			slog.String("event_id", event.EventID))
	}

	return nil
}
