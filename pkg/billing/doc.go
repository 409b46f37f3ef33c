// Package billing integrates the payment provider and drives plan
// transitions from its webhook event stream.
//
// The Provider interface abstracts the payment vendor behind two
// operations: creating a hosted checkout session and verifying/parsing
// a webhook payload. A complete Paddle implementation is included.
// Signature verification is computed over the exact raw request bytes,
// so the HTTP layer must hand this package the unmodified body.
//
// Service is the single writer of the plan store. A verified
// subscription-activation event overwrites the identity's tier and
// zeroes the current period's quota; a cancellation overwrites the tier
// back to free and leaves consumed quota untouched. Both transitions
// are pure overwrites, which makes redelivered events idempotent.
package billing
