package controller

import (
	"net/http"

	"github.com/fastnear/fastnear-api/app/api/types"
	"github.com/fastnear/fastnear-api/pkg/db/kv"
)

// HandleTopHolders returns the largest holders of a token ordered by live balance.
func (c *Controller) HandleTopHolders(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := accountID(w, r, "token_id")
	if !ok {
		return
	}

	holders, err := c.App.Store.TopHolders(r.Context(), tokenID, TopHoldersLimit)
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	accounts := make([]types.Holder, len(holders))
	for i, h := range holders {
		accounts[i] = types.Holder{AccountID: h.AccountID, Balance: h.Balance}
	}

	writeJSON(w, http.StatusOK, types.TokenHolders{TokenID: tokenID, Accounts: accounts})
}

// HandleFTWithBalances returns the fungible tokens of an account with balances read live
// from the chain instead of the index.
func (c *Controller) HandleFTWithBalances(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r, "account_id")
	if !ok {
		return
	}

	ctx := r.Context()
	fields, err := c.App.Store.QueryPrefix(ctx, kv.PrefixFungible, id)
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	balances, err := c.App.RPC.FTBalances(ctx, id, kv.FieldNames(fields))
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AccountTokenBalances{AccountID: id, Tokens: balances})
}
