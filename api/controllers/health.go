package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shoppix/shoppix-backend/api/responses"
	"github.com/shoppix/shoppix-backend/pkg/config"
	pkgerrors "github.com/shoppix/shoppix-backend/pkg/errors"
	"github.com/shoppix/shoppix-backend/pkg/logger"
)

const readyProbeTimeout = 5 * time.Second

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shoppix-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP, pubsubP pinger) http.HandlerFunc {
	probes := []struct {
		name string
		dep  pinger
	}{
		{"database", dbP},
		{"redis", redisP},
		{"pubsub", pubsubP},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shoppix-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyProbeTimeout)
		defer cancel()

		for _, probe := range probes {
			if probe.dep == nil {
				continue
			}
			if err := probe.dep.Ping(ctx); err != nil {
				failCtx := logg.WithField(r.Context(), "dependency", probe.name)
				logg.Error(failCtx, "readiness probe failed", err)
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, probe.name+" unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
