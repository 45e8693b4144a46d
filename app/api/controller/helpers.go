package controller

import (
	"errors"
	"net/http"

	"github.com/fastnear/fastnear-api/pkg/db/kv"
	"github.com/fastnear/fastnear-api/pkg/near"
	"github.com/fastnear/fastnear-api/pkg/rpc"
	"github.com/go-jose/go-jose/v4/json"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var errHistoryDisabled = errors.New("add-key history is not available")

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// handleError maps err to a status code. Internal details are logged, not returned.
func (c *Controller) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		storeErr    *kv.StoreError
		upstreamErr *rpc.UpstreamError
	)

	switch {
	case errors.As(err, &upstreamErr):
		c.App.Logger.Warn("Upstream rpc failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusBadGateway, "upstream rpc error")
	case errors.Is(err, errHistoryDisabled):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &storeErr):
		c.App.Logger.Error("Store query failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	default:
		c.App.Logger.Error("Query failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// accountID reads and validates the {name} route variable as an account id.
func accountID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id, err := near.ParseAccountID(mux.Vars(r)[name])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return "", false
	}
	return id.String(), true
}

// publicKey reads and validates the {public_key} route variable.
func publicKey(w http.ResponseWriter, r *http.Request) (near.PublicKey, bool) {
	key, err := near.ParsePublicKey(mux.Vars(r)["public_key"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid public key")
		return near.PublicKey{}, false
	}
	return key, true
}
