package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/emekaobi/jollofkitchen-backend/api/responses"
	"github.com/emekaobi/jollofkitchen-backend/pkg/config"
	pkgerrors "github.com/emekaobi/jollofkitchen-backend/pkg/errors"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
)

// Pinger is the health check surface a backing dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-JollofKitchen-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every backing dependency and reports ready only when
// all of them answer.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps ...Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-JollofKitchen-Env", cfg.App.Env)

		var combined error
		for _, dep := range deps {
			if dep == nil {
				continue
			}
			combined = multierr.Append(combined, dep.Ping(r.Context()))
		}
		if combined != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, combined, "readiness check")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
