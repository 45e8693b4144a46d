package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/fastnear/fastnear-api/pkg/metrics"
	"github.com/fastnear/fastnear-api/pkg/near"
)

// FTBalances asks the chain for the live balance of accountID in every token of tokenIDs,
// using one JSON-RPC batch bounded by FallbackTimeout.
//
// Requests are correlated by their position in tokenIDs, never by token id. A failed call
// fails the whole batch with *UpstreamError; an error, malformed result or missing response
// for one token only leaves that token's balance nil.
func (c *HTTPClient) FTBalances(ctx context.Context, accountID string, tokenIDs []string) (map[string]*string, error) {
	balances := make(map[string]*string, len(tokenIDs))
	if len(tokenIDs) == 0 {
		return balances, nil
	}

	args, err := json.Marshal(map[string]string{"account_id": accountID})
	if err != nil {
		return nil, err
	}
	argsBase64 := base64.StdEncoding.EncodeToString(args)

	batch := make([]jsonRPCRequest, len(tokenIDs))
	for i, tokenID := range tokenIDs {
		batch[i] = jsonRPCRequest{
			JSONRPC: "2.0",
			Method:  queryMethod,
			Params: callFunctionParams{
				RequestType: callFunctionType,
				Finality:    finalFinality,
				AccountID:   tokenID,
				MethodName:  ftBalanceOfMethod,
				ArgsBase64:  argsBase64,
			},
			ID: strconv.Itoa(i),
		}
		balances[tokenID] = nil
	}

	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, FallbackTimeout)
	defer cancel()

	var responses []jsonRPCResponse
	if err := c.doJSON(ctx, http.MethodPost, rootPath, batch, &responses); err != nil {
		metrics.RPC().ObserveBatch(started, 0, 0, err)
		return nil, &UpstreamError{Method: ftBalanceOfMethod, Err: err}
	}

	resolved := 0
	for _, resp := range responses {
		i, ok := resp.index(len(tokenIDs))
		if !ok {
			continue
		}
		if balance := decodeBalance(resp); balance != nil {
			balances[tokenIDs[i]] = balance
			resolved++
		}
	}
	metrics.RPC().ObserveBatch(started, resolved, len(tokenIDs)-resolved, nil)

	return balances, nil
}

// decodeBalance extracts the balance string returned by ft_balance_of, or nil.
func decodeBalance(resp jsonRPCResponse) *string {
	if len(resp.Error) > 0 && string(resp.Error) != "null" {
		return nil
	}
	if len(resp.Result) == 0 {
		return nil
	}

	var call callFunctionResult
	if err := json.Unmarshal(resp.Result, &call); err != nil || call.Error != "" {
		return nil
	}

	var balance string
	if err := json.Unmarshal(call.Result, &balance); err != nil {
		return nil
	}
	return near.NormalizeBalance(balance)
}
