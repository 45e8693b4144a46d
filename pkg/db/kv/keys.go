// Package kv reads the account state that the indexer keeps in Redis.
//
// Key layout:
//
//	pk:<public_key>   hash  account_id -> flag
//	st:<account_id>   hash  staking pool -> last update block height
//	ft:<account_id>   hash  fungible token contract -> last update block height
//	nf:<account_id>   hash  non-fungible token contract -> last update block height
//	b:<token_id>      hash  account_id -> balance (decimal u128)
//	tb:<token_id>     zset  account_id scored by balance at last update
//	accounts          hash  account_id -> account JSON
//	meta:*            string sync metadata
package kv

// Prefix selects one of the per-identifier relation hashes.
type Prefix string

const (
	PrefixPublicKey   Prefix = "pk"
	PrefixStaking     Prefix = "st"
	PrefixFungible    Prefix = "ft"
	PrefixNonFungible Prefix = "nf"
)

const (
	balancePrefix    = "b"
	topHoldersPrefix = "tb"

	AccountsKey            = "accounts"
	MetaLatestBlock        = "meta:latest_block"
	MetaLatestBlockTime    = "meta:latest_block_time"
	MetaLatestBalanceBlock = "meta:latest_balance_block"
)

// Valid reports whether p is one of the relation prefixes.
func (p Prefix) Valid() bool {
	switch p {
	case PrefixPublicKey, PrefixStaking, PrefixFungible, PrefixNonFungible:
		return true
	default:
		return false
	}
}

// Key returns the hash key holding the relation p for id.
func (p Prefix) Key(id string) string {
	return string(p) + ":" + id
}

// BalanceKey returns the hash key holding balances of tokenID.
func BalanceKey(tokenID string) string {
	return balancePrefix + ":" + tokenID
}

// TopHoldersKey returns the sorted set key ranking holders of tokenID.
func TopHoldersKey(tokenID string) string {
	return topHoldersPrefix + ":" + tokenID
}
