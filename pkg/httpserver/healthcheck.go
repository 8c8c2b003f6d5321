package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/livefeed/pkg/logger"
)

const healthCheckTimeout = 5 * time.Second

// HealthCheckHandler serves liveness and readiness checks.
//
// Without checks it answers 200 "ALIVE". With checks it runs each one against
// the request context, bounded by a five second timeout, and answers
// 200 "READY" when all pass or 503 "NOT_READY" on the first failure.
func HealthCheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	if log == nil {
		log = logger.NewNope()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")

		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.WarnContext(ctx, "Readiness check failed",
					logger.Component("healthcheck"), logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
