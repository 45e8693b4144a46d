package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/fastnear/fastnear-api/app/api/types"
	"github.com/fastnear/fastnear-api/pkg/health"
	"go.uber.org/zap"
)

// healthTimeout bounds /health so probes get an answer while the store is retrying.
var healthTimeout = 5 * time.Second

// HandleStatus returns the raw sync metadata.
func (c *Controller) HandleStatus(w http.ResponseWriter, r *http.Request) {
	meta, err := c.App.Store.SyncMeta(r.Context())
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.Status{
		Version: Version,
		Status:  health.StatusFromMeta(meta, time.Now()),
	})
}

// HandleHealth returns 200 {"status":"ok"} or 503 {"status":"unhealthy"}.
// An unreachable store is unhealthy.
func (c *Controller) HandleHealth(w http.ResponseWriter, r *http.Request) {
	verdict := health.Unhealthy

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	meta, err := c.App.Store.SyncMeta(ctx)
	if err != nil {
		c.App.Logger.Warn("Unable to read sync metadata", zap.Error(err))
	} else {
		verdict = health.Evaluate(meta, c.App.HealthConfig, time.Now())
	}

	code := http.StatusOK
	if verdict != health.OK {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, types.Health{Status: verdict})
}
