package rpc

import (
	"context"
)

// Client captures the live chain queries the API falls back to.
type Client interface {
	// FTBalances returns the live balance of accountID for every token contract in tokenIDs.
	FTBalances(ctx context.Context, accountID string, tokenIDs []string) (map[string]*string, error)
}

var _ Client = (*HTTPClient)(nil)
