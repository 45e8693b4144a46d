package actions

import (
	"context"
)

// Store describes the add-key history lookups served from the actions table.
type Store interface {
	// AccountsByPublicKey returns the accounts the key was successfully added to, most recent first.
	AccountsByPublicKey(ctx context.Context, publicKey string) ([]string, error)
	// PublicKeysByAccount returns the keys successfully added to the account, most recent first.
	PublicKeysByAccount(ctx context.Context, accountID string) ([]string, error)

	Close() error
}

var _ Store = (*DB)(nil)
