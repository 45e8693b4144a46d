package kv

import (
	"context"
	"sort"
	"strings"

	"github.com/fastnear/fastnear-api/pkg/near"
	"github.com/holiman/uint256"
	"github.com/redis/go-redis/v9"
)

// Holder is one entry of a token leaderboard.
type Holder struct {
	AccountID string
	Balance   *string
}

// TopHolders returns up to limit holders of tokenID ordered by live balance.
//
// Candidates come from the tb:<token> sorted set, whose scores can lag behind the balance
// records. The live balances are then fetched and used for the final order: balance
// descending (unknown counts as zero), then account id descending.
func (s *Store) TopHolders(ctx context.Context, tokenID string, limit int) ([]Holder, error) {
	if limit <= 0 {
		return []Holder{}, nil
	}

	key := TopHoldersKey(tokenID)
	members, err := run(ctx, s, "top_holders", func(ctx context.Context, rdb *redis.Client) ([]string, error) {
		return rdb.ZRevRange(ctx, key, 0, int64(limit-1)).Result()
	})
	if err != nil {
		return nil, err
	}

	pairs := make([]BalancePair, len(members))
	for i, m := range members {
		pairs[i] = BalancePair{TokenID: tokenID, AccountID: m}
	}
	balances, err := s.QueryBalances(ctx, pairs)
	if err != nil {
		return nil, err
	}

	holders := make([]Holder, len(members))
	for i, m := range members {
		holders[i] = Holder{AccountID: m, Balance: balances[i]}
	}
	SortHolders(holders)
	return holders, nil
}

// SortHolders orders holders by balance descending, then account id descending.
func SortHolders(holders []Holder) {
	amounts := make(map[string]*uint256.Int, len(holders))
	for _, h := range holders {
		amounts[h.AccountID] = holderAmount(h)
	}
	sort.SliceStable(holders, func(i, j int) bool {
		if c := amounts[holders[i].AccountID].Cmp(amounts[holders[j].AccountID]); c != 0 {
			return c > 0
		}
		return strings.Compare(holders[i].AccountID, holders[j].AccountID) > 0
	})
}

func holderAmount(h Holder) *uint256.Int {
	if h.Balance != nil {
		if v, ok := near.ParseBalance(*h.Balance); ok {
			return v
		}
	}
	return uint256.NewInt(0)
}
