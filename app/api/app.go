package api

import (
	"context"

	"github.com/alitto/pond/v2"
	"github.com/fastnear/fastnear-api/app/api/types"
	"github.com/fastnear/fastnear-api/pkg/db/actions"
	"github.com/fastnear/fastnear-api/pkg/db/kv"
	"github.com/fastnear/fastnear-api/pkg/health"
	"github.com/fastnear/fastnear-api/pkg/logging"
	"github.com/fastnear/fastnear-api/pkg/redis"
	"github.com/fastnear/fastnear-api/pkg/retry"
	"github.com/fastnear/fastnear-api/pkg/rpc"
	"github.com/fastnear/fastnear-api/pkg/utils"
	"go.uber.org/zap"
)

// Initialize initializes the application.
func Initialize(ctx context.Context) *types.App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr'
		panic(err)
	}

	redisClient, err := redis.NewClient(ctx, logger.Named("redis"))
	if err != nil {
		logger.Fatal("Unable to connect to redis", zap.Error(err))
	}

	executor := retry.NewExecutor(retry.StoreConfig(), logger.Named("retry"))
	store := kv.NewStore(redisClient, executor, logger.Named("kv"))

	// ClickHouse only backs the add-key history routes (optional)
	var actionsDb actions.Store
	if utils.EnvBool("CLICKHOUSE_ENABLED", false) {
		db, err := actions.New(ctx, logger.Named("clickhouse"))
		if err != nil {
			logger.Warn("Failed to initialize ClickHouse - add-key history will be disabled", zap.Error(err))
		} else {
			actionsDb = db
		}
	} else {
		logger.Info("ClickHouse disabled - add-key history will not be available")
	}

	app := &types.App{
		Redis:        redisClient,
		Store:        store,
		Actions:      actionsDb,
		RPC:          rpc.NewHTTPWithOpts(rpc.OptsFromEnv()),
		HealthConfig: health.ConfigFromEnv(),
		WorkerPool:   pond.NewPool(utils.EnvInt("FULL_WORKERS", 16), pond.WithQueueSize(1024)),
		CronSpec:     utils.Env("HEALTH_CRON_SPEC", "*/15 * * * * *"),
		Logger:       logger,
	}

	if err := SetupHealthMonitor(ctx, app, logging.NewCronAdapter(logger.Named("cron"))); err != nil {
		logger.Fatal("Unable to schedule health monitor", zap.Error(err))
	}

	return app
}
