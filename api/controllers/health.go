package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/condostore/pos-backend/api/responses"
	"github.com/condostore/pos-backend/pkg/config"
	pkgerrors "github.com/condostore/pos-backend/pkg/errors"
	"github.com/condostore/pos-backend/pkg/logger"
)

const envHeader = "X-CondoPOS-Env"

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the journal database and, when configured, redis.
// The settlement backend is deliberately not part of readiness; the service
// keeps serving its snapshot while the backend is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, journalDB pinger, redisClient pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		if journalDB != nil {
			if err := journalDB.Ping(ctx); err != nil {
				checks["journal_db"] = err.Error()
				healthy = false
			} else {
				checks["journal_db"] = "ok"
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		if !healthy {
			responses.WriteError(ctx, logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependency check failed").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
