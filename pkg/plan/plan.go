package plan

// Tier identifies a subscription level.
type Tier string

const (
	TierFree    Tier = "free"
	TierStarter Tier = "starter"
	TierGrowth  Tier = "growth"

	// TierAdmin is derived per request from the admin secret and is
	// never persisted in a plan store.
	TierAdmin Tier = "admin"
)

// Unlimited indicates no monthly cap (-1 chosen for SQL compatibility).
const Unlimited int64 = -1

// Money represents a monetary amount in the smallest currency unit.
// For example, $10.99 USD would be Amount: 1099, Currency: "USD".
type Money struct {
	Amount   int64  `yaml:"amount"`
	Currency string `yaml:"currency"`
}

// Plan describes a subscription tier and its monthly generation cap.
// PriceID must be set to the payment provider's price identifier for
// paid tiers so checkout sessions and webhook events map back to a tier.
type Plan struct {
	Tier         Tier   `yaml:"tier"`
	Name         string `yaml:"name"`
	MonthlyLimit int64  `yaml:"monthly_limit"`
	PriceID      string `yaml:"price_id"`
	Price        Money  `yaml:"price"`
}

// Paid reports whether the plan requires a checkout to activate.
func (p Plan) Paid() bool {
	return p.Tier != TierFree
}
