package kv

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Account returns the JSON blob the indexer stores for accountID in the accounts hash.
// It returns nil when the account is unknown or the stored value is not valid JSON.
func (s *Store) Account(ctx context.Context, accountID string) (json.RawMessage, error) {
	raw, err := run(ctx, s, "account", func(ctx context.Context, rdb *redis.Client) (*string, error) {
		v, err := rdb.HGet(ctx, AccountsKey, accountID).Result()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
	if err != nil || raw == nil {
		return nil, err
	}

	if !json.Valid([]byte(*raw)) {
		s.logger.Warn("Invalid account JSON treated as unknown", zap.String("account", accountID))
		return nil, nil
	}
	return json.RawMessage(*raw), nil
}
