package api

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/fastnear/fastnear-api/app/api/types"
	"github.com/fastnear/fastnear-api/pkg/db/kv"
	"github.com/fastnear/fastnear-api/pkg/health"
	"github.com/fastnear/fastnear-api/pkg/logging"
	"github.com/fastnear/fastnear-api/pkg/redis"
	"github.com/fastnear/fastnear-api/pkg/retry"
)

func newMonitorApp(t *testing.T) (*types.App, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	logger := zaptest.NewLogger(t)

	client, err := redis.NewClientWithOptions(context.Background(), logger, &goredis.Options{
		Addr:       mr.Addr(),
		MaxRetries: -1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	exec := retry.NewExecutor(retry.Config{MaxRetries: 1, InitialDelay: time.Millisecond, Multiplier: 2}, logger)
	return &types.App{
		Redis:        client,
		Store:        kv.NewStore(client, exec, logger),
		HealthConfig: health.Config{MaxHealthyLatencySec: 10, MaxHealthySyncBlockDiff: 3},
		CronSpec:     "*/15 * * * * *",
		Logger:       logger,
	}, mr
}

func TestCheckHealth(t *testing.T) {
	app, mr := newMonitorApp(t)
	now := time.Now()
	ctx := context.Background()

	mr.Set("meta:latest_block", "100")
	mr.Set("meta:latest_balance_block", "98")
	mr.Set("meta:latest_block_time", strconv.FormatInt(now.Add(-5*time.Second).UnixNano(), 10))

	verdict, err := CheckHealth(ctx, app, now)
	require.NoError(t, err)
	assert.Equal(t, health.OK, verdict)

	mr.Set("meta:latest_balance_block", "90")
	verdict, err = CheckHealth(ctx, app, now)
	require.NoError(t, err)
	assert.Equal(t, health.Unhealthy, verdict)

	mr.Close()
	verdict, err = CheckHealth(ctx, app, now)
	assert.Error(t, err)
	assert.Equal(t, health.Unhealthy, verdict)
}

func TestSetupHealthMonitor(t *testing.T) {
	app, _ := newMonitorApp(t)

	require.NoError(t, SetupHealthMonitor(context.Background(), app, logging.NewCronAdapter(app.Logger)))
	require.NotNil(t, app.Cron)
	assert.Len(t, app.Cron.Entries(), 1)

	app.CronSpec = "not a spec"
	assert.Error(t, SetupHealthMonitor(context.Background(), app, logging.NewCronAdapter(app.Logger)))
}
