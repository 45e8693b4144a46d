package controller

import (
	"context"
	"net/http"

	"github.com/fastnear/fastnear-api/app/api/types"
	"github.com/fastnear/fastnear-api/pkg/db/kv"
)

// HandleStaking returns the staking pools of an account.
func (c *Controller) HandleStaking(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r, "account_id")
	if !ok {
		return
	}

	fields, err := c.App.Store.QueryPrefix(r.Context(), kv.PrefixStaking, id)
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AccountPools{AccountID: id, Pools: kv.FieldNames(fields)})
}

// HandleFT returns the fungible token contracts of an account.
func (c *Controller) HandleFT(w http.ResponseWriter, r *http.Request) {
	c.handleContracts(w, r, kv.PrefixFungible)
}

// HandleNFT returns the non-fungible token contracts of an account.
func (c *Controller) HandleNFT(w http.ResponseWriter, r *http.Request) {
	c.handleContracts(w, r, kv.PrefixNonFungible)
}

func (c *Controller) handleContracts(w http.ResponseWriter, r *http.Request, prefix kv.Prefix) {
	id, ok := accountID(w, r, "account_id")
	if !ok {
		return
	}

	fields, err := c.App.Store.QueryPrefix(r.Context(), prefix, id)
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AccountContracts{AccountID: id, ContractIDs: kv.FieldNames(fields)})
}

// HandleStakingV1 returns the staking pools of an account with their last update block.
func (c *Controller) HandleStakingV1(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r, "account_id")
	if !ok {
		return
	}

	pools, err := c.pools(r.Context(), id)
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AccountPoolsV1{AccountID: id, Pools: pools})
}

// HandleFTV1 returns the fungible tokens of an account with their indexed balances.
func (c *Controller) HandleFTV1(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r, "account_id")
	if !ok {
		return
	}

	tokens, err := c.fungibleTokens(r.Context(), id)
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AccountFungibleTokensV1{AccountID: id, Tokens: tokens})
}

// HandleNFTV1 returns the non-fungible token contracts of an account with their last update block.
func (c *Controller) HandleNFTV1(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r, "account_id")
	if !ok {
		return
	}

	tokens, err := c.tokens(r.Context(), kv.PrefixNonFungible, id)
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AccountTokensV1{AccountID: id, Tokens: tokens})
}

func (c *Controller) pools(ctx context.Context, id string) ([]types.Pool, error) {
	fields, err := c.App.Store.QueryPrefixParsed(ctx, kv.PrefixStaking, id)
	if err != nil {
		return nil, err
	}

	pools := make([]types.Pool, len(fields))
	for i, f := range fields {
		pools[i] = types.Pool{PoolID: f.Field, LastUpdateBlockHeight: f.Value}
	}
	return pools, nil
}

func (c *Controller) tokens(ctx context.Context, prefix kv.Prefix, id string) ([]types.Token, error) {
	fields, err := c.App.Store.QueryPrefixParsed(ctx, prefix, id)
	if err != nil {
		return nil, err
	}

	tokens := make([]types.Token, len(fields))
	for i, f := range fields {
		tokens[i] = types.Token{ContractID: f.Field, LastUpdateBlockHeight: f.Value}
	}
	return tokens, nil
}

// fungibleTokens is tokens(ft) with the balance of every token read in one pipelined batch.
func (c *Controller) fungibleTokens(ctx context.Context, id string) ([]types.FungibleToken, error) {
	fields, err := c.App.Store.QueryPrefixParsed(ctx, kv.PrefixFungible, id)
	if err != nil {
		return nil, err
	}

	pairs := make([]kv.BalancePair, len(fields))
	for i, f := range fields {
		pairs[i] = kv.BalancePair{TokenID: f.Field, AccountID: id}
	}
	balances, err := c.App.Store.QueryBalances(ctx, pairs)
	if err != nil {
		return nil, err
	}

	tokens := make([]types.FungibleToken, len(fields))
	for i, f := range fields {
		tokens[i] = types.FungibleToken{
			ContractID:            f.Field,
			LastUpdateBlockHeight: f.Value,
			Balance:               balances[i],
		}
	}
	return tokens, nil
}
