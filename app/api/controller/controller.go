package controller

import (
	"net/http"

	"github.com/fastnear/fastnear-api/app/api/types"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is reported by /status. It is set at build time.
var Version = "dev"

// TopHoldersLimit is the leaderboard size served by /v1/ft/{token_id}/top.
const TopHoldersLimit = 100

type Controller struct {
	App *types.App
}

// NewController returns a new controller.
func NewController(app *types.App) *Controller {
	return &Controller{
		App: app,
	}
}

// NewRouter returns a new router with all the routes defined in this file.
func (c *Controller) NewRouter() (*mux.Router, error) {
	r := mux.NewRouter()

	r.HandleFunc("/status", c.HandleStatus).Methods("GET")
	r.HandleFunc("/health", c.HandleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v0 := r.PathPrefix("/v0").Subrouter()
	v0.HandleFunc("/public_key/{public_key}", c.HandlePublicKey).Methods("GET")
	v0.HandleFunc("/public_key/{public_key}/all", c.HandlePublicKeyAll).Methods("GET")
	v0.HandleFunc("/account/{account_id}/staking", c.HandleStaking).Methods("GET")
	v0.HandleFunc("/account/{account_id}/ft", c.HandleFT).Methods("GET")
	v0.HandleFunc("/account/{account_id}/nft", c.HandleNFT).Methods("GET")
	v0.HandleFunc("/account/{account_id}/full_keys", c.HandleAccountKeys).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/account/{account_id}/staking", c.HandleStakingV1).Methods("GET")
	v1.HandleFunc("/account/{account_id}/ft", c.HandleFTV1).Methods("GET")
	v1.HandleFunc("/account/{account_id}/nft", c.HandleNFTV1).Methods("GET")
	v1.HandleFunc("/account/{account_id}/full", c.HandleAccountFull).Methods("GET")
	v1.HandleFunc("/ft/{token_id}/top", c.HandleTopHolders).Methods("GET")

	exp := r.PathPrefix("/exp").Subrouter()
	exp.HandleFunc("/account/{account_id}/ft_with_balances", c.HandleFTWithBalances).Methods("GET")

	return r, nil
}

// WithCORS is a middleware that adds CORS headers to the response.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")
		w.Header().Set("Access-Control-Allow-Methods", http.MethodGet+", "+http.MethodPost+", "+http.MethodOptions)
		w.Header().Set("Access-Control-Max-Age", "3600")

		// Fast-path the preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
