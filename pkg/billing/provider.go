package billing

import (
	"context"
	"time"

	"github.com/dmitrymomot/textgate/pkg/plan"
)

// EventType is the normalized billing event type. Each provider
// implementation maps its own event names to these.
type EventType string

const (
	// EventSubscriptionActivated means the identity paid for a tier and
	// the plan store must transition to it.
	EventSubscriptionActivated EventType = "subscription_activated"

	// EventSubscriptionCancelled means the identity's paid tier ended
	// and the plan store must transition back to free.
	EventSubscriptionCancelled EventType = "subscription_cancelled"

	// EventIgnored covers provider events with no plan-state effect.
	EventIgnored EventType = "ignored"
)

// Event is a normalized, signature-verified billing event.
type Event struct {
	Type          EventType
	ProviderEvent string // original provider event name
	EventID       string // provider's event id, stable across redeliveries
	Identity      string // caller identity echoed from checkout custom data
	Tier          plan.Tier
	PriceID       string // provider price id, fallback for tier resolution
}

// CheckoutRequest contains what a provider needs to start a hosted
// checkout session. Identity and Tier are round-tripped through the
// provider's custom data so the webhook can attribute the purchase.
type CheckoutRequest struct {
	Identity   string
	Tier       plan.Tier
	PriceID    string
	Email      string
	SuccessURL string
	CancelURL  string
}

// CheckoutLink represents a hosted checkout session.
type CheckoutLink struct {
	URL       string
	SessionID string
	ExpiresAt time.Time
}

// Provider abstracts the payment provider. ParseWebhook must verify the
// signature over the exact raw payload bytes before returning an event;
// a verification failure is reported as ErrWebhookVerificationFailed
// and must not be followed by any state mutation upstream.
type Provider interface {
	CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error)
	ParseWebhook(ctx context.Context, payload []byte, signature string) (*Event, error)
}
