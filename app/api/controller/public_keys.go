package controller

import (
	"net/http"

	"github.com/fastnear/fastnear-api/app/api/types"
	"github.com/fastnear/fastnear-api/pkg/db/kv"
	"github.com/fastnear/fastnear-api/pkg/utils"
)

// HandlePublicKey returns the accounts the indexer currently associates with a public key.
func (c *Controller) HandlePublicKey(w http.ResponseWriter, r *http.Request) {
	key, ok := publicKey(w, r)
	if !ok {
		return
	}

	fields, err := c.App.Store.QueryPrefix(r.Context(), kv.PrefixPublicKey, key.String())
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.PublicKeyAccounts{
		PublicKey:  key.String(),
		AccountIDs: kv.FieldNames(fields),
	})
}

// HandlePublicKeyAll extends HandlePublicKey with every account the key was ever added to
// and, for ed25519 keys, the implicit account. History is skipped when ClickHouse is disabled.
func (c *Controller) HandlePublicKeyAll(w http.ResponseWriter, r *http.Request) {
	key, ok := publicKey(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	fields, err := c.App.Store.QueryPrefix(ctx, kv.PrefixPublicKey, key.String())
	if err != nil {
		c.handleError(w, r, err)
		return
	}
	ids := kv.FieldNames(fields)

	if c.App.Actions != nil {
		history, err := c.App.Actions.AccountsByPublicKey(ctx, key.String())
		if err != nil {
			c.handleError(w, r, err)
			return
		}
		ids = append(ids, history...)
	}

	if implicit, ok := key.ImplicitAccount(); ok {
		ids = append(ids, implicit.String())
	}

	writeJSON(w, http.StatusOK, types.PublicKeyAccounts{
		PublicKey:  key.String(),
		AccountIDs: utils.Dedup(ids),
	})
}

// HandleAccountKeys returns the public keys ever added to an account.
func (c *Controller) HandleAccountKeys(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r, "account_id")
	if !ok {
		return
	}
	if c.App.Actions == nil {
		c.handleError(w, r, errHistoryDisabled)
		return
	}

	keys, err := c.App.Actions.PublicKeysByAccount(r.Context(), id)
	if err != nil {
		c.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.AccountPublicKeys{
		AccountID:  id,
		PublicKeys: keys,
	})
}
