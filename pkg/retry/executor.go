package retry

import (
	"context"
	"time"

	"github.com/fastnear/fastnear-api/pkg/metrics"
	"go.uber.org/zap"
)

// Source hands out a live connection of type C and can replace it after a failure.
//
// Reconnect receives the connection the failed attempt used; implementations must only
// replace it if it is still the current one, so that concurrent callers failing on the same
// connection trigger a single reconnect.
type Source[C any] interface {
	Conn() C
	Reconnect(ctx context.Context, stale C) error
}

// Executor runs connection-using operations under a bounded retry policy.
// It holds no per-call state and is safe for concurrent use.
type Executor struct {
	cfg    Config
	logger *zap.Logger
}

// NewExecutor builds an Executor. A nil logger is replaced with a no-op logger.
func NewExecutor(cfg Config, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	return &Executor{cfg: cfg, logger: logger}
}

// Config returns the policy the executor was built with.
func (e *Executor) Config() Config {
	return e.cfg
}

// Execute calls fn with a connection from src until it succeeds or the attempt budget is spent.
//
// After every failed attempt except the last, it sleeps, asks src to reconnect (a reconnect
// error is logged and the next attempt runs on whatever connection src hands out), and grows
// the delay. When the budget is exhausted the error of the last attempt is returned as is.
// A cancelled ctx ends the loop with ctx.Err().
func Execute[C any, T any](ctx context.Context, e *Executor, src Source[C], operation string, fn func(context.Context, C) (T, error)) (T, error) {
	var zero T
	started := time.Now()

	for attempt := 1; ; attempt++ {
		conn := src.Conn()
		v, err := fn(ctx, conn)
		if err == nil {
			if attempt > 1 {
				e.logger.Info("Store operation succeeded after retries",
					zap.String("operation", operation),
					zap.Int("attempts", attempt))
			}
			metrics.Store().Observe(operation, started, nil)
			return v, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.Store().Observe(operation, started, ctxErr)
			return zero, ctxErr
		}

		e.logger.Error("Store operation failed",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", e.cfg.MaxRetries),
			zap.Error(err))

		if attempt >= e.cfg.MaxRetries {
			metrics.Store().Observe(operation, started, err)
			return zero, err
		}
		metrics.Store().Retry(operation)

		if sleepErr := sleep(ctx, calculateBackoff(e.cfg, attempt)); sleepErr != nil {
			metrics.Store().Observe(operation, started, sleepErr)
			return zero, sleepErr
		}

		rerr := src.Reconnect(ctx, conn)
		metrics.Store().Reconnect(rerr)
		if rerr != nil {
			e.logger.Warn("Reconnect failed, keeping current connection",
				zap.String("operation", operation),
				zap.Int("attempt", attempt),
				zap.Error(rerr))
		}
	}
}
