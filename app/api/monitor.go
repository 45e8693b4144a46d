package api

import (
	"context"
	"time"

	"github.com/fastnear/fastnear-api/app/api/types"
	"github.com/fastnear/fastnear-api/pkg/health"
	"github.com/fastnear/fastnear-api/pkg/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SetupHealthMonitor schedules the periodic health check on app.Cron.
func SetupHealthMonitor(ctx context.Context, app *types.App, logger cron.Logger) error {
	// Seconds field, optional
	app.Cron = cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(logger), cron.Recover(logger)))

	_, err := app.Cron.AddFunc(app.CronSpec, func() {
		// keep each run bounded
		rctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if _, err := CheckHealth(rctx, app, time.Now()); err != nil {
			logger.Error(err, "health check failed")
		}
	})
	return err
}

// CheckHealth evaluates the sync metadata and publishes it as metrics.
// A store failure is reported as unhealthy along with the error.
func CheckHealth(ctx context.Context, app *types.App, now time.Time) (health.Verdict, error) {
	meta, err := app.Store.SyncMeta(ctx)
	if err != nil {
		metrics.Health().Set(nil, nil, nil, false)
		return health.Unhealthy, err
	}

	status := health.StatusFromMeta(meta, now)
	verdict := health.Check(status, app.HealthConfig)
	metrics.Health().Set(status.SyncLatencySec, status.SyncBlockHeight, status.BlockDiff(), verdict == health.OK)

	if verdict != health.OK {
		app.Logger.Warn("Service unhealthy",
			zap.Any("status", status),
			zap.Float64("maxLatencySec", app.HealthConfig.MaxHealthyLatencySec),
			zap.Uint64("maxBlockDiff", app.HealthConfig.MaxHealthySyncBlockDiff))
	}
	return verdict, nil
}
