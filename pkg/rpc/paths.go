package rpc

import "time"

const (
	// DefaultEndpoint is the archival-free mainnet JSON-RPC endpoint.
	DefaultEndpoint = "https://beta.rpc.mainnet.near.org"

	// FallbackTimeout bounds one live balance batch.
	FallbackTimeout = 10 * time.Second

	// JSON-RPC is served at the endpoint root.
	rootPath = ""

	queryMethod       = "query"
	callFunctionType  = "call_function"
	finalFinality     = "final"
	ftBalanceOfMethod = "ft_balance_of"
)
