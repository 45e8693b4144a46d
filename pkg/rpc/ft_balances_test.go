package rpc

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// balanceResult encodes s the way call_function returns it: a JSON string as a byte array.
func balanceResult(t *testing.T, s string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(s)
	require.NoError(t, err)
	nums := make([]int, len(raw))
	for i, b := range raw {
		nums[i] = int(b)
	}
	out, err := json.Marshal(map[string]any{
		"result":       nums,
		"block_height": 100,
		"block_hash":   "hash",
		"logs":         []string{},
	})
	require.NoError(t, err)
	return out
}

func newTestClient(endpoints ...string) *HTTPClient {
	return NewHTTPWithOpts(Opts{
		Endpoints:       endpoints,
		Timeout:         2 * time.Second,
		RPS:             1000,
		Burst:           1000,
		BreakerFailures: 1,
		BreakerCooldown: time.Minute,
	})
}

func TestFTBalances_PerTokenIsolation(t *testing.T) {
	// Replies out of order; the second token returns garbage.
	resp := []map[string]any{
		{"jsonrpc": "2.0", "id": "2", "result": balanceResult(t, "0300")},
		{"jsonrpc": "2.0", "id": "1", "result": map[string]any{"result": "not bytes"}},
		{"jsonrpc": "2.0", "id": "0", "result": balanceResult(t, "1000")},
	}

	var got []jsonRPCRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	balances, err := c.FTBalances(context.Background(), "alice.near", []string{"a.near", "b.near", "c.near"})
	require.NoError(t, err)

	require.Len(t, balances, 3)
	require.NotNil(t, balances["a.near"])
	assert.Equal(t, "1000", *balances["a.near"])
	assert.Nil(t, balances["b.near"])
	require.NotNil(t, balances["c.near"])
	assert.Equal(t, "300", *balances["c.near"])

	require.Len(t, got, 3)
	for i, req := range got {
		assert.Equal(t, "query", req.Method)
		assert.Equal(t, string(rune('0'+i)), req.ID)
	}

	params, ok := got[1].Params.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "call_function", params["request_type"])
	assert.Equal(t, "final", params["finality"])
	assert.Equal(t, "b.near", params["account_id"])
	assert.Equal(t, "ft_balance_of", params["method_name"])

	args, err := base64.StdEncoding.DecodeString(params["args_base64"].(string))
	require.NoError(t, err)
	assert.JSONEq(t, `{"account_id":"alice.near"}`, string(args))
}

func TestFTBalances_ErrorsAndUnknownIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"jsonrpc":"2.0","id":0,"error":{"name":"HANDLER_ERROR"}},
			{"jsonrpc":"2.0","id":"7","result":{}},
			{"jsonrpc":"2.0","id":"nope","result":{}},
			{"jsonrpc":"2.0","id":1,"result":{"result":[],"error":"wasm execution failed"}}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	balances, err := c.FTBalances(context.Background(), "alice.near", []string{"a.near", "b.near"})
	require.NoError(t, err)
	assert.Equal(t, map[string]*string{"a.near": nil, "b.near": nil}, balances)
}

func TestFTBalances_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.FTBalances(context.Background(), "alice.near", []string{"a.near"})
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "ft_balance_of", upstream.Method)
}

func TestFTBalances_Empty(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	balances, err := c.FTBalances(context.Background(), "alice.near", nil)
	require.NoError(t, err)
	assert.Empty(t, balances)
	assert.Zero(t, calls.Load())
}

func TestHTTPClient_FailoverAndBreaker(t *testing.T) {
	var badCalls, goodCalls atomic.Int32
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		badCalls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		goodCalls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer good.Close()

	c := newTestClient(bad.URL, good.URL)
	for i := 0; i < 3; i++ {
		_, err := c.FTBalances(context.Background(), "alice.near", []string{"a.near"})
		require.NoError(t, err)
	}

	// Threshold is one failure, so the bad endpoint is skipped after the first call.
	assert.Equal(t, int32(1), badCalls.Load())
	assert.Equal(t, int32(3), goodCalls.Load())
	assert.True(t, c.isOpen(bad.URL))
	assert.False(t, c.isOpen(good.URL))
}

func TestHTTPClient_BreakerExpires(t *testing.T) {
	c := NewHTTPWithOpts(Opts{
		Endpoints:       []string{"http://unused"},
		BreakerFailures: 2,
		BreakerCooldown: 10 * time.Millisecond,
	})

	c.noteFailure("ep")
	assert.False(t, c.isOpen("ep"))
	c.noteFailure("ep")
	assert.True(t, c.isOpen("ep"))

	time.Sleep(20 * time.Millisecond)
	assert.False(t, c.isOpen("ep"))
	_, ok := c.breakers.Load("ep")
	assert.False(t, ok)
}

func TestHTTPClient_AcquireHonorsContext(t *testing.T) {
	c := NewHTTPWithOpts(Opts{Endpoints: []string{"http://unused"}, RPS: 1, Burst: 1})
	require.NoError(t, c.acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.acquire(ctx), context.DeadlineExceeded)
}

func TestByteArray(t *testing.T) {
	var b byteArray
	require.NoError(t, json.Unmarshal([]byte(`[34,49,34]`), &b))
	assert.Equal(t, `"1"`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`[256]`), &b))
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &b))
}
