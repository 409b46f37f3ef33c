package gate

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/textgate/pkg/identity"
)

// Quota metadata headers set on both admitted and rejected responses so
// callers can render a usage meter without a separate request.
const (
	HeaderPlan      = "X-Quota-Plan"
	HeaderLimit     = "X-Quota-Limit"
	HeaderUsed      = "X-Quota-Used"
	HeaderRemaining = "X-Quota-Remaining"
)

// Middleware guards the wrapped handler with the gate. Rejected
// requests get HTTP 402 with plan, limit and used in the JSON body and
// never reach the next handler; a storage failure with fail-open
// disabled yields 503. Admitted requests carry the Decision (and the
// resolved identity) in the request context.
func Middleware(g *Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := g.Check(w, r)

			w.Header().Set(HeaderPlan, string(d.Tier))
			w.Header().Set(HeaderLimit, strconv.FormatInt(d.Limit, 10))
			w.Header().Set(HeaderUsed, strconv.FormatInt(d.Used, 10))
			w.Header().Set(HeaderRemaining, strconv.FormatInt(d.Remaining, 10))

			if !d.Allowed {
				if d.Degraded {
					http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
					return
				}

				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusPaymentRequired)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": "monthly quota exceeded",
					"plan":  d.Tier,
					"limit": d.Limit,
					"used":  d.Used,
				})
				return
			}

			ctx := WithDecision(r.Context(), d)
			if !d.Admin {
				ctx = identity.WithIdentity(ctx, d.Identity)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
