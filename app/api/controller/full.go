package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alitto/pond/v2"
	"github.com/fastnear/fastnear-api/app/api/types"
	"github.com/fastnear/fastnear-api/pkg/db/kv"
	"go.uber.org/zap"
)

// HandleAccountFull returns the account state, staking pools, fungible tokens with balances
// and non-fungible tokens of an account. The four reads run concurrently on the shared pool.
func (c *Controller) HandleAccountFull(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r, "account_id")
	if !ok {
		return
	}

	var (
		state    json.RawMessage
		pools    []types.Pool
		tokens   []types.FungibleToken
		nfts     []types.Token
		stateErr error
		poolsErr error
		ftErr    error
		nftErr   error
	)

	group := c.App.WorkerPool.NewGroupContext(r.Context())
	groupCtx := group.Context()

	group.Submit(func() {
		if err := groupCtx.Err(); err != nil {
			stateErr = err
			return
		}
		state, stateErr = c.App.Store.Account(groupCtx, id)
	})
	group.Submit(func() {
		if err := groupCtx.Err(); err != nil {
			poolsErr = err
			return
		}
		pools, poolsErr = c.pools(groupCtx, id)
	})
	group.Submit(func() {
		if err := groupCtx.Err(); err != nil {
			ftErr = err
			return
		}
		tokens, ftErr = c.fungibleTokens(groupCtx, id)
	})
	group.Submit(func() {
		if err := groupCtx.Err(); err != nil {
			nftErr = err
			return
		}
		nfts, nftErr = c.tokens(groupCtx, kv.PrefixNonFungible, id)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		c.App.Logger.Warn("parallel account fetch encountered error", zap.String("accountId", id), zap.Error(err))
	}

	if err := errors.Join(stateErr, poolsErr, ftErr, nftErr); err != nil {
		c.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AccountFull{
		AccountID: id,
		State:     state,
		Pools:     pools,
		Tokens:    tokens,
		NFTs:      nfts,
	})
}
