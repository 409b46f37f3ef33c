package billing

import "errors"

var (
	ErrMissingAPIKey        = errors.New("billing provider API key is required")
	ErrMissingWebhookSecret = errors.New("billing provider webhook secret is required")
	ErrInvalidEnvironment   = errors.New("invalid billing provider environment")

	ErrWebhookVerificationFailed = errors.New("webhook signature verification failed")
	ErrNoCheckoutURL             = errors.New("no checkout URL returned from provider")

	ErrUnknownTier        = errors.New("unknown plan tier")
	ErrTierNotPurchasable = errors.New("tier is not purchasable")
	ErrMissingIdentity    = errors.New("identity is required")
	ErrMissingPriceID     = errors.New("price ID is required")
)
