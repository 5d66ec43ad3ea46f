package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/tentenco/stellantis/api/responses"
	"github.com/tentenco/stellantis/pkg/config"
	pkgerrors "github.com/tentenco/stellantis/pkg/errors"
	"github.com/tentenco/stellantis/pkg/logger"
)

const healthEnvHeader = "X-Stellantis-Env"

// Pinger is any dependency that can answer a liveness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(healthEnvHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the datastore and cache before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(healthEnvHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		statuses := map[string]string{}
		degraded := false
		for name, dep := range deps {
			if dep == nil {
				statuses[name] = "not configured"
				degraded = true
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				statuses[name] = "unavailable"
				degraded = true
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "readiness probe failed", err)
				}
				continue
			}
			statuses[name] = "ok"
		}

		if degraded {
			err := pkgerrors.New(pkgerrors.CodeDependency, "service not ready").WithDetails(statuses)
			responses.WriteError(ctx, nil, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"status":       "ready",
			"dependencies": statuses,
		})
	}
}
