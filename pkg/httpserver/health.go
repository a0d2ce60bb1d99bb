package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/dmitrymomot/applib/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// HealthHandler answers liveness and readiness probes. Without checks it
// returns 200 "ALIVE". Otherwise every check runs with the request context
// and the handler returns 200 "READY", or 503 "NOT_READY" on the first
// failure. Nil checks are ignored.
func HealthHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	checks = slices.DeleteFunc(slices.Clone(checks), func(c Check) bool { return c == nil })
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.WarnContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
