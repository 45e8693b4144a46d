package kv

import (
	"context"

	"github.com/fastnear/fastnear-api/pkg/retry"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store runs the read queries of the API against Redis.
// Every call goes through the retry executor; Store itself is stateless and safe for
// concurrent use.
type Store struct {
	src    retry.Source[*redis.Client]
	exec   *retry.Executor
	logger *zap.Logger
}

// NewStore returns a Store reading through src.
func NewStore(src retry.Source[*redis.Client], exec *retry.Executor, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{src: src, exec: exec, logger: logger.Named("kv")}
}

func run[T any](ctx context.Context, s *Store, op string, fn func(context.Context, *redis.Client) (T, error)) (T, error) {
	v, err := retry.Execute(ctx, s.exec, s.src, op, fn)
	if err != nil {
		return v, &StoreError{Op: op, Err: err}
	}
	return v, nil
}
