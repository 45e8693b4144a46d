package kv

import (
	"context"
	"errors"

	"github.com/fastnear/fastnear-api/pkg/near"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BalancePair identifies one balance record field.
type BalancePair struct {
	TokenID   string
	AccountID string
}

// QueryBalances fetches the balance of every pair in a single pipelined round trip.
// The result is aligned with pairs; a missing or malformed balance is nil.
func (s *Store) QueryBalances(ctx context.Context, pairs []BalancePair) ([]*string, error) {
	if len(pairs) == 0 {
		return []*string{}, nil
	}

	raw, err := run(ctx, s, "query_balances", func(ctx context.Context, rdb *redis.Client) ([]*string, error) {
		cmds := make([]*redis.StringCmd, len(pairs))
		_, err := rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			for i, p := range pairs {
				cmds[i] = pipe.HGet(ctx, BalanceKey(p.TokenID), p.AccountID)
			}
			return nil
		})
		// Pipelined reports the first failed command; a missing field is not a failure.
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, err
		}

		out := make([]*string, len(cmds))
		for i, cmd := range cmds {
			v, cerr := cmd.Result()
			switch {
			case errors.Is(cerr, redis.Nil):
				// A redis.Nil on the first command is copied onto every command that
				// succeeded; their replies are still in Val. An empty string is never a balance.
				if v != "" {
					out[i] = &v
				}
			case cerr != nil:
				return nil, cerr
			default:
				out[i] = &v
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	balances := make([]*string, len(raw))
	for i, v := range raw {
		if v == nil {
			continue
		}
		balances[i] = near.NormalizeBalance(*v)
		if balances[i] == nil {
			s.logger.Debug("Malformed balance treated as unknown",
				zap.String("token", pairs[i].TokenID),
				zap.String("account", pairs[i].AccountID),
				zap.String("value", *v))
		}
	}
	return balances, nil
}
