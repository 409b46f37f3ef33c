package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/textgate/pkg/billing"
)

const maxWebhookBody = 1 << 20 // 1 MiB

// paddleWebhook receives payment provider events.
//
// The body is read raw and handed to the billing service untouched:
// the provider's signature is computed over exact bytes, so nothing may
// parse or rewrite the payload before verification. A signature failure
// is a security event and answers 400 with no state change; the
// provider retries on non-2xx, so store failures answer 500.
func (h *Handler) paddleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	signature := r.Header.Get("Paddle-Signature")

	err = h.Billing.HandleWebhook(r.Context(), payload, signature)
	switch {
	case errors.Is(err, billing.ErrWebhookVerificationFailed):
		h.Log.WarnContext(r.Context(), "rejected webhook with invalid signature",
			slog.String("remote_addr", r.RemoteAddr))
		writeError(w, http.StatusBadRequest, "invalid signature")
		return
	case err != nil:
		h.Log.ErrorContext(r.Context(), "webhook processing failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "webhook processing failed")
		return
	}

	w.WriteHeader(http.StatusOK)
}
