package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/textgate/pkg/billing"
	"github.com/dmitrymomot/textgate/pkg/gate"
	"github.com/dmitrymomot/textgate/pkg/httpserver"
	"github.com/dmitrymomot/textgate/pkg/identity"
	"github.com/dmitrymomot/textgate/pkg/plan"
	"github.com/dmitrymomot/textgate/pkg/quota"
	"github.com/dmitrymomot/textgate/pkg/textgen"
)

// Handler bundles the dependencies of the HTTP surface.
type Handler struct {
	Gate      *gate.Gate
	Generator textgen.Generator
	Billing   *billing.Service
	Resolver  *identity.Resolver
	Plans     plan.Store
	Catalog   *plan.Catalog
	Ledger    quota.Ledger
	Log       *slog.Logger

	// Health holds readiness probes for backing stores.
	Health []func(context.Context) error
}

// Router assembles the service routes.
//
// The webhook route is mounted outside any body-reading middleware:
// signature verification needs the raw, unparsed payload bytes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(h.Log, h.Health...))

	r.Route("/v1", func(r chi.Router) {
		r.With(gate.Middleware(h.Gate)).Post("/generate", h.generate)
		r.Post("/checkout", h.checkout)
		r.Get("/usage", h.usage)
		r.Post("/webhooks/paddle", h.paddleWebhook)
	})

	return r
}
