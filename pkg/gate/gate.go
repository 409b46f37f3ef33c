package gate

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/textgate/pkg/identity"
	"github.com/dmitrymomot/textgate/pkg/plan"
	"github.com/dmitrymomot/textgate/pkg/quota"
)

// Config holds the gate's failure policy.
//
// FailOpen is deliberate and explicit: when the quota ledger is
// unreachable the gate admits the request unmetered instead of denying
// paying users service over an infrastructure blip. Every fail-open
// admission is logged.
type Config struct {
	FailOpen       bool          `env:"GATE_FAIL_OPEN" envDefault:"true"`
	StorageTimeout time.Duration `env:"GATE_STORAGE_TIMEOUT" envDefault:"2s"`
}

// Decision is the gate's verdict for one request.
type Decision struct {
	Allowed   bool
	Admin     bool // admitted via the admin override, ledger untouched
	Degraded  bool // storage was unreachable and the failure policy applied
	Identity  identity.Identity
	Tier      plan.Tier
	Used      int64
	Limit     int64 // plan.Unlimited for admin and unlimited plans
	Remaining int64
}

// Gate guards the metered operation: it resolves the caller, reads the
// plan store, and consumes one unit from the quota ledger. The ledger's
// atomic check-and-consume is the only serialization point between
// concurrent requests for the same identity.
type Gate struct {
	resolver *identity.Resolver
	plans    plan.Store
	catalog  *plan.Catalog
	ledger   quota.Ledger
	cfg      Config
	log      *slog.Logger
}

// New creates a Gate. Panics on nil dependencies to fail fast during
// initialization, matching the rest of the service constructors.
func New(resolver *identity.Resolver, plans plan.Store, catalog *plan.Catalog, ledger quota.Ledger, cfg Config, log *slog.Logger) *Gate {
	if resolver == nil {
		panic("gate: identity resolver is required")
	}
	if plans == nil {
		panic("gate: plan store is required")
	}
	if catalog == nil {
		panic("gate: plan catalog is required")
	}
	if ledger == nil {
		panic("gate: quota ledger is required")
	}
	if log == nil {
		log = slog.Default()
	}
	if cfg.StorageTimeout <= 0 {
		cfg.StorageTimeout = 2 * time.Second
	}
	return &Gate{
		resolver: resolver,
		plans:    plans,
		catalog:  catalog,
		ledger:   ledger,
		cfg:      cfg,
		log:      log,
	}
}

// Check resolves the request to a Decision. The admin override short
// circuits to an unlimited admission and never touches the ledger.
// Writing the first-contact visitor cookie happens here, so Check must
// run before any response body is written.
func (g *Gate) Check(w http.ResponseWriter, r *http.Request) Decision {
	if g.resolver.IsAdmin(r) {
		return Decision{
			Allowed:   true,
			Admin:     true,
			Tier:      plan.TierAdmin,
			Limit:     plan.Unlimited,
			Remaining: plan.Unlimited,
		}
	}

	id := g.resolver.Resolve(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), g.cfg.StorageTimeout)
	defer cancel()

	// The plan store is the only trusted source of the caller's tier;
	// a store failure falls back to free rather than trusting anything
	// from the request.
	tier, err := g.plans.Get(ctx, id.Value)
	if err != nil {
		g.log.WarnContext(ctx, "plan store unavailable, assuming free tier",
			slog.String("identity", id.Value), slog.Any("error", err))
		tier = plan.TierFree
	}

	p, ok := g.catalog.Get(tier)
	if !ok {
		// A stored tier missing from the catalog means the catalog
		// shrank since the webhook wrote it. Degrade to free.
		g.log.WarnContext(ctx, "stored tier not in catalog, assuming free tier",
			slog.String("identity", id.Value), slog.String("tier", string(tier)))
		p, _ = g.catalog.Get(plan.TierFree)
	}

	period := quota.CurrentPeriod(time.Now())

	res, err := g.ledger.CheckAndConsume(ctx, id.Value, p, period)
	if err != nil {
		if g.cfg.FailOpen {
			g.log.WarnContext(ctx, "quota ledger unavailable, admitting unmetered",
				slog.String("identity", id.Value),
				slog.String("period", period.String()),
				slog.Any("error", err))
			return Decision{
				Allowed:   true,
				Degraded:  true,
				Identity:  id,
				Tier:      p.Tier,
				Limit:     p.MonthlyLimit,
				Remaining: plan.Unlimited, // unknown; do not pretend otherwise
			}
		}

		g.log.ErrorContext(ctx, "quota ledger unavailable, rejecting (fail-open disabled)",
			slog.String("identity", id.Value), slog.Any("error", err))
		return Decision{
			Allowed:  false,
			Degraded: true,
			Identity: id,
			Tier:     p.Tier,
			Limit:    p.MonthlyLimit,
		}
	}

	return Decision{
		Allowed:   res.Allowed,
		Identity:  id,
		Tier:      p.Tier,
		Used:      res.Used,
		Limit:     res.Limit,
		Remaining: res.Remaining,
	}
}
