package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/textgate/internal/api"
	"github.com/dmitrymomot/textgate/pkg/billing"
	"github.com/dmitrymomot/textgate/pkg/config"
	"github.com/dmitrymomot/textgate/pkg/cookie"
	"github.com/dmitrymomot/textgate/pkg/gate"
	"github.com/dmitrymomot/textgate/pkg/httpserver"
	"github.com/dmitrymomot/textgate/pkg/identity"
	"github.com/dmitrymomot/textgate/pkg/logger"
	"github.com/dmitrymomot/textgate/pkg/pg"
	"github.com/dmitrymomot/textgate/pkg/plan"
	"github.com/dmitrymomot/textgate/pkg/quota"
	"github.com/dmitrymomot/textgate/pkg/redis"
	"github.com/dmitrymomot/textgate/pkg/textgen"
)

type appConfig struct {
	// PlansFile points at a YAML plan catalog; empty uses built-in defaults.
	PlansFile string `env:"PLANS_FILE" envDefault:""`
}

func main() {
	ctx := context.Background()

	log := logger.NewFromConfig(
		config.MustLoad[logger.Config](),
		logger.WithAttrs(slog.String("service", "textgate")),
	)

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "service stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	appCfg := config.MustLoad[appConfig]()

	// Backing stores.
	redisClient, err := redis.Connect(ctx, config.MustLoad[redis.Config]())
	if err != nil {
		return err
	}
	defer redisClient.Close()

	pgCfg := config.MustLoad[pg.Config]()
	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return err
	}

	// Plan catalog.
	var source plan.Source
	if appCfg.PlansFile != "" {
		source = plan.NewYAMLSource(appCfg.PlansFile)
	}
	catalog := plan.Default()
	if source != nil {
		if catalog, err = source.Load(ctx); err != nil {
			return err
		}
	}

	// Identity resolution.
	cookies, err := cookie.NewFromConfig(config.MustLoad[cookie.Config]())
	if err != nil {
		return err
	}
	resolver := identity.NewResolver(cookies, config.MustLoad[identity.Config]())

	// Quota and plan state.
	planStore := plan.NewPostgresStore(pool)
	ledger := quota.NewRedisLedger(redisClient)

	g := gate.New(resolver, planStore, catalog, ledger, config.MustLoad[gate.Config](), log)

	// Billing.
	provider, err := billing.NewPaddleProvider(config.MustLoad[billing.PaddleConfig]())
	if err != nil {
		return err
	}
	billingSvc := billing.NewService(catalog, provider, planStore, ledger, log)

	// Generation collaborator.
	generator, err := textgen.NewOpenAIClient(config.MustLoad[textgen.Config]())
	if err != nil {
		return err
	}

	handler := &api.Handler{
		Gate:      g,
		Generator: generator,
		Billing:   billingSvc,
		Resolver:  resolver,
		Plans:     planStore,
		Catalog:   catalog,
		Ledger:    ledger,
		Log:       log,
		Health: []func(context.Context) error{
			redis.Healthcheck(redisClient),
			pg.Healthcheck(pool),
		},
	}

	srv := httpserver.New(config.MustLoad[httpserver.Config](), httpserver.WithLogger(log))
	return srv.Run(ctx, handler.Router())
}
