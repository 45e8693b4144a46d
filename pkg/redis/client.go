package redis

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fastnear/fastnear-api/pkg/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// DefaultCloseGrace is how long a replaced client stays open so in-flight commands can finish.
	DefaultCloseGrace = 5 * time.Second

	pingTimeout = 5 * time.Second
)

// Client owns the connection to the indexer's Redis.
//
// The underlying go-redis client is a connection pool: every command checks out its own
// connection, so concurrent requests never share one. Reconnect swaps the whole pool
// atomically instead of mutating it in place.
type Client struct {
	opts       *redis.Options
	current    atomic.Pointer[redis.Client]
	logger     *zap.Logger
	closeGrace time.Duration
}

// OptionsFromEnv builds connection options from the environment.
// Environment variables:
//   - REDIS_URL: full redis:// URL, takes precedence over the variables below
//   - REDIS_HOST: Redis host (default: "localhost")
//   - REDIS_PORT: Redis port (default: "6379")
//   - REDIS_PASSWORD: Redis password (default: "")
//   - REDIS_DB: Redis database number (default: "0")
//   - REDIS_POOL_SIZE: connections in the pool (default: 32)
func OptionsFromEnv() (*redis.Options, error) {
	var opts *redis.Options
	if url := utils.Env("REDIS_URL", ""); url != "" {
		parsed, err := redis.ParseURL(url)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     fmt.Sprintf("%s:%s", utils.Env("REDIS_HOST", "localhost"), utils.Env("REDIS_PORT", "6379")),
			Password: utils.Env("REDIS_PASSWORD", ""),
			DB:       int(utils.EnvInt64("REDIS_DB", 0)),
		}
	}

	// Connection pool
	opts.PoolSize = utils.EnvInt("REDIS_POOL_SIZE", 32)
	opts.MinIdleConns = 2

	// Timeouts
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	// Retries are owned by the retry executor.
	opts.MaxRetries = -1

	return opts, nil
}

// NewClient connects using OptionsFromEnv.
func NewClient(ctx context.Context, logger *zap.Logger) (*Client, error) {
	opts, err := OptionsFromEnv()
	if err != nil {
		return nil, err
	}
	return NewClientWithOptions(ctx, logger, opts)
}

// NewClientWithOptions dials Redis with opts and verifies the connection with PING.
func NewClientWithOptions(ctx context.Context, logger *zap.Logger, opts *redis.Options) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		opts:       opts,
		logger:     logger,
		closeGrace: DefaultCloseGrace,
	}

	rdb, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}
	c.current.Store(rdb)

	logger.Info("Connected to Redis",
		zap.String("addr", opts.Addr),
		zap.Int("db", opts.DB),
		zap.Int("poolSize", opts.PoolSize))

	return c, nil
}

func (c *Client) dial(ctx context.Context) (*redis.Client, error) {
	rdb := redis.NewClient(c.opts)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", c.opts.Addr, err)
	}
	return rdb, nil
}

// Conn returns the current pooled client.
func (c *Client) Conn() *redis.Client {
	return c.current.Load()
}

// Reconnect dials a fresh pool and installs it if stale is still the current one.
// When another caller already replaced stale, Reconnect is a no-op. The replaced pool is
// closed after the close grace period.
func (c *Client) Reconnect(ctx context.Context, stale *redis.Client) error {
	if c.current.Load() != stale {
		return nil
	}

	fresh, err := c.dial(ctx)
	if err != nil {
		return err
	}

	if !c.current.CompareAndSwap(stale, fresh) {
		// Lost the race to a concurrent reconnect.
		_ = fresh.Close()
		return nil
	}

	c.logger.Info("Reconnected to Redis", zap.String("addr", c.opts.Addr))
	if stale != nil {
		time.AfterFunc(c.closeGrace, func() {
			if err := stale.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
				c.logger.Debug("Closing replaced Redis client failed", zap.Error(err))
			}
		})
	}
	return nil
}

// Close closes the current connection pool.
func (c *Client) Close() error {
	return c.Conn().Close()
}
