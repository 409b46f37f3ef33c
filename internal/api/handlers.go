package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/textgate/pkg/billing"
	"github.com/dmitrymomot/textgate/pkg/gate"
	"github.com/dmitrymomot/textgate/pkg/plan"
	"github.com/dmitrymomot/textgate/pkg/quota"
)

const maxRequestBody = 1 << 20 // 1 MiB

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text      string    `json:"text"`
	Plan      plan.Tier `json:"plan"`
	Remaining int64     `json:"remaining"`
}

// generate runs the metered operation. The gate middleware has already
// consumed one quota unit; an upstream failure does not refund it, a
// deliberate simplicity choice to avoid double-counting races on refund.
func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	d, _ := gate.DecisionFromContext(r.Context())

	text, err := h.Generator.Generate(r.Context(), req.Prompt)
	if err != nil {
		h.Log.ErrorContext(r.Context(), "generation failed", slog.Any("error", err))
		writeError(w, http.StatusBadGateway, "generation failed")
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Text:      text,
		Plan:      d.Tier,
		Remaining: d.Remaining,
	})
}

type checkoutRequest struct {
	Tier       string `json:"tier"`
	Email      string `json:"email"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

type checkoutResponse struct {
	URL       string    `json:"url"`
	SessionID string    `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := h.Resolver.Resolve(w, r)

	link, err := h.Billing.Checkout(r.Context(), id.Value, plan.Tier(req.Tier), billing.CheckoutOptions{
		Email:      req.Email,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	switch {
	case errors.Is(err, billing.ErrUnknownTier), errors.Is(err, billing.ErrTierNotPurchasable):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.Log.ErrorContext(r.Context(), "checkout failed", slog.Any("error", err))
		writeError(w, http.StatusBadGateway, "checkout failed")
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{
		URL:       link.URL,
		SessionID: link.SessionID,
		ExpiresAt: link.ExpiresAt,
	})
}

type usageResponse struct {
	Plan      plan.Tier `json:"plan"`
	Used      int64     `json:"used"`
	Limit     int64     `json:"limit"`
	Remaining int64     `json:"remaining"`
	Period    string    `json:"period"`
}

// usage is a read-only snapshot for rendering a usage meter; it never
// consumes quota.
func (h *Handler) usage(w http.ResponseWriter, r *http.Request) {
	period := quota.CurrentPeriod(time.Now())

	if h.Resolver.IsAdmin(r) {
		writeJSON(w, http.StatusOK, usageResponse{
			Plan:      plan.TierAdmin,
			Limit:     plan.Unlimited,
			Remaining: plan.Unlimited,
			Period:    period.String(),
		})
		return
	}

	id := h.Resolver.Resolve(w, r)

	tier, err := h.Plans.Get(r.Context(), id.Value)
	if err != nil {
		h.Log.WarnContext(r.Context(), "plan store unavailable, assuming free tier", slog.Any("error", err))
		tier = plan.TierFree
	}
	p, ok := h.Catalog.Get(tier)
	if !ok {
		p, _ = h.Catalog.Get(plan.TierFree)
	}

	used, err := h.Ledger.Usage(r.Context(), id.Value, period)
	if err != nil {
		h.Log.WarnContext(r.Context(), "quota ledger unavailable, reporting zero usage", slog.Any("error", err))
		used = 0
	}

	remaining := plan.Unlimited
	if p.MonthlyLimit != plan.Unlimited {
		remaining = max(p.MonthlyLimit-used, 0)
	}

	writeJSON(w, http.StatusOK, usageResponse{
		Plan:      p.Tier,
		Used:      used,
		Limit:     p.MonthlyLimit,
		Remaining: remaining,
		Period:    period.String(),
	})
}
