package health

import (
	"context"
	"net/http"
	"time"

	"github.com/sellgrid/sellermock/api/responses"
	"github.com/sellgrid/sellermock/pkg/config"
)

// Pinger is any dependency that can report liveness.
type Pinger interface {
	Ping(context.Context) error
}

// Healthz reports process and dependency health. A failing dependency flips
// the status but the endpoint itself always answers.
func Healthz(cfg *config.Config, db Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := map[string]string{}

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				checks["database"] = "down"
				status = http.StatusServiceUnavailable
			} else {
				checks["database"] = "up"
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				checks["redis"] = "down"
			} else {
				checks["redis"] = "up"
			}
		}

		body := map[string]any{
			"status": "ok",
			"env":    cfg.App.Env,
			"checks": checks,
		}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}

		responses.WriteRaw(w, status, body)
	}
}
