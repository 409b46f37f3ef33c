package httpserver

import (
	"context"
	"log/slog"
	"net/http"
)

// HealthCheckHandler returns a handler usable as both liveness and
// readiness probe. With no dependency functions it answers 200 "ALIVE";
// with dependencies it runs each and answers 200 "READY" only when all
// succeed, 500 "NOT_READY" otherwise.
func HealthCheckHandler(log *slog.Logger, funcs ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(funcs) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, fn := range funcs {
			if err := fn(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "healthcheck failed", slog.Any("error", err))
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
