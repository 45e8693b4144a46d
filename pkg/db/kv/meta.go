package kv

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// SyncMeta holds the raw sync metadata written by the indexer. Missing keys are nil.
type SyncMeta struct {
	LatestBlock        *string
	LatestBlockTime    *string
	LatestBalanceBlock *string
}

// SyncMeta reads the three sync metadata keys in one MGET.
func (s *Store) SyncMeta(ctx context.Context) (SyncMeta, error) {
	values, err := run(ctx, s, "sync_meta", func(ctx context.Context, rdb *redis.Client) ([]interface{}, error) {
		return rdb.MGet(ctx, MetaLatestBlock, MetaLatestBlockTime, MetaLatestBalanceBlock).Result()
	})
	if err != nil {
		return SyncMeta{}, err
	}

	return SyncMeta{
		LatestBlock:        optionalString(values, 0),
		LatestBlockTime:    optionalString(values, 1),
		LatestBalanceBlock: optionalString(values, 2),
	}, nil
}

func optionalString(values []interface{}, i int) *string {
	if i >= len(values) {
		return nil
	}
	if s, ok := values[i].(string); ok {
		return &s
	}
	return nil
}
