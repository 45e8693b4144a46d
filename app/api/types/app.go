package types

import (
	"context"
	"net/http"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/fastnear/fastnear-api/pkg/db/actions"
	"github.com/fastnear/fastnear-api/pkg/db/kv"
	"github.com/fastnear/fastnear-api/pkg/health"
	"github.com/fastnear/fastnear-api/pkg/redis"
	"github.com/fastnear/fastnear-api/pkg/rpc"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type App struct {
	// Redis owns the pooled connection the Store reads through.
	Redis *redis.Client
	Store *kv.Store

	// Actions is nil when ClickHouse is disabled.
	Actions actions.Store

	// RPC serves live balance lookups.
	RPC rpc.Client

	HealthConfig health.Config

	// WorkerPool is shared by the handlers that fan out store reads.
	WorkerPool pond.Pool

	// Cron runs the health monitor, according to CronSpec.
	Cron     *cron.Cron
	CronSpec string

	// Zap Logger
	Logger *zap.Logger
	// Server represents the HTTP server instance used to handle incoming client requests and manage HTTP routes.
	Server *http.Server
}

// Start starts the application.
func (a *App) Start(ctx context.Context) {
	if a.Cron != nil {
		a.Cron.Start()
		a.Logger.Info("Health monitor started", zap.String("cronSpec", a.CronSpec))
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.Error("Server stopped", zap.Error(err))
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = a.Server.Shutdown(shutdownCtx)

	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}

	if a.WorkerPool != nil {
		a.WorkerPool.StopAndWait()
	}

	if a.Actions != nil {
		if err := a.Actions.Close(); err != nil {
			a.Logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if err := a.Redis.Close(); err != nil {
		a.Logger.Error("Failed to close redis connection", zap.Error(err))
	}

	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("さようなら!")
}
