package types

import (
	"encoding/json"

	"github.com/fastnear/fastnear-api/pkg/health"
)

type PublicKeyAccounts struct {
	PublicKey  string   `json:"public_key"`
	AccountIDs []string `json:"account_ids"`
}

type AccountPublicKeys struct {
	AccountID  string   `json:"account_id"`
	PublicKeys []string `json:"public_keys"`
}

type AccountPools struct {
	AccountID string   `json:"account_id"`
	Pools     []string `json:"pools"`
}

type AccountContracts struct {
	AccountID   string   `json:"account_id"`
	ContractIDs []string `json:"contract_ids"`
}

type AccountTokenBalances struct {
	AccountID string             `json:"account_id"`
	Tokens    map[string]*string `json:"tokens"`
}

// Pool is a staking pool with the block of its last indexed change.
type Pool struct {
	PoolID                string  `json:"pool_id"`
	LastUpdateBlockHeight *uint64 `json:"last_update_block_height"`
}

// Token is a token contract with the block of its last indexed change.
type Token struct {
	ContractID            string  `json:"contract_id"`
	LastUpdateBlockHeight *uint64 `json:"last_update_block_height"`
}

// FungibleToken is a Token with the indexed balance of the account, null when unknown.
type FungibleToken struct {
	ContractID            string  `json:"contract_id"`
	LastUpdateBlockHeight *uint64 `json:"last_update_block_height"`
	Balance               *string `json:"balance"`
}

type AccountPoolsV1 struct {
	AccountID string `json:"account_id"`
	Pools     []Pool `json:"pools"`
}

type AccountTokensV1 struct {
	AccountID string  `json:"account_id"`
	Tokens    []Token `json:"tokens"`
}

type AccountFungibleTokensV1 struct {
	AccountID string          `json:"account_id"`
	Tokens    []FungibleToken `json:"tokens"`
}

// AccountFull is everything indexed for one account. State is null for unknown accounts.
type AccountFull struct {
	AccountID string          `json:"account_id"`
	State     json.RawMessage `json:"state"`
	Pools     []Pool          `json:"pools"`
	Tokens    []FungibleToken `json:"tokens"`
	NFTs      []Token         `json:"nfts"`
}

type Holder struct {
	AccountID string  `json:"account_id"`
	Balance   *string `json:"balance"`
}

type TokenHolders struct {
	TokenID  string   `json:"token_id"`
	Accounts []Holder `json:"accounts"`
}

type Status struct {
	Version string `json:"version"`
	health.Status
}

type Health struct {
	Status health.Verdict `json:"status"`
}
