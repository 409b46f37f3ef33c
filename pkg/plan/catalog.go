package plan

import (
	"errors"
	"fmt"
	"slices"
)

// Catalog is the immutable set of plans the service sells.
// It is loaded once at startup and never mutated afterwards,
// so concurrent reads need no synchronization.
type Catalog struct {
	plans map[Tier]Plan
}

// NewCatalog builds a catalog from the given plans and validates it.
// A catalog must contain the free tier because unknown identities
// always resolve to it.
func NewCatalog(plans ...Plan) (*Catalog, error) {
	if len(plans) == 0 {
		return nil, errors.Join(ErrInvalidCatalog, errors.New("no plans provided"))
	}

	byTier := make(map[Tier]Plan, len(plans))
	for _, p := range plans {
		if p.Tier == "" {
			return nil, errors.Join(ErrInvalidCatalog, errors.New("plan with empty tier"))
		}
		if p.Tier == TierAdmin {
			return nil, errors.Join(ErrInvalidCatalog, errors.New("admin tier cannot be cataloged"))
		}
		if p.MonthlyLimit < 0 && p.MonthlyLimit != Unlimited {
			return nil, errors.Join(ErrInvalidCatalog,
				fmt.Errorf("plan %s has negative monthly limit: %d", p.Tier, p.MonthlyLimit))
		}
		if _, exists := byTier[p.Tier]; exists {
			return nil, errors.Join(ErrInvalidCatalog, fmt.Errorf("duplicate tier %s", p.Tier))
		}
		if p.Paid() && p.PriceID == "" {
			return nil, errors.Join(ErrInvalidCatalog,
				fmt.Errorf("paid plan %s has no price ID", p.Tier))
		}
		byTier[p.Tier] = p
	}

	if _, ok := byTier[TierFree]; !ok {
		return nil, errors.Join(ErrInvalidCatalog, errors.New("catalog must contain the free tier"))
	}

	return &Catalog{plans: byTier}, nil
}

// Default returns the built-in catalog used when no plans file is configured.
func Default() *Catalog {
	c, err := NewCatalog(
		Plan{Tier: TierFree, Name: "Free", MonthlyLimit: 10},
		Plan{
			Tier: TierStarter, Name: "Starter", MonthlyLimit: 200,
			PriceID: "price_starter_monthly",
			Price:   Money{Amount: 900, Currency: "USD"},
		},
		Plan{
			Tier: TierGrowth, Name: "Growth", MonthlyLimit: 2000,
			PriceID: "price_growth_monthly",
			Price:   Money{Amount: 2900, Currency: "USD"},
		},
	)
	if err != nil {
		panic(err) // built-in plans are static and must always validate
	}
	return c
}

// Get returns the plan for a tier.
func (c *Catalog) Get(tier Tier) (Plan, bool) {
	p, ok := c.plans[tier]
	return p, ok
}

// ByPriceID returns the plan matching a provider price ID.
func (c *Catalog) ByPriceID(priceID string) (Plan, bool) {
	if priceID == "" {
		return Plan{}, false
	}
	for _, p := range c.plans {
		if p.PriceID == priceID {
			return p, true
		}
	}
	return Plan{}, false
}

// Tiers returns all cataloged tiers in deterministic order.
func (c *Catalog) Tiers() []Tier {
	tiers := make([]Tier, 0, len(c.plans))
	for t := range c.plans {
		tiers = append(tiers, t)
	}
	slices.Sort(tiers)
	return tiers
}
