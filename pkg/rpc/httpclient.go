package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fastnear/fastnear-api/pkg/utils"
	"github.com/puzpuzpuz/xsync/v4"
)

// HTTPClient is a wrapper around an http.Client that implements a circuit-breaker and token-bucket.
type HTTPClient struct {
	endpoints []string
	client    *http.Client

	// token-bucket
	tokens      int64
	maxTokens   int64
	refillEvery time.Duration
	lastRefill  atomic.Value // time.Time

	// circuit-breaker, per endpoint
	breakers         *xsync.Map[string, breakerState]
	breakerThreshold int
	breakerCooldown  time.Duration
}

type breakerState struct {
	failures  int
	openUntil time.Time
}

// Opts is the set of options for a new HTTPClient.
type Opts struct {
	Endpoints       []string
	Timeout         time.Duration
	RPS             int
	Burst           int
	BreakerFailures int
	BreakerCooldown time.Duration
	HTTPClient      *http.Client
}

// OptsFromEnv reads RPC_URLS, RPC_RPS and RPC_BURST.
func OptsFromEnv() Opts {
	return Opts{
		Endpoints: utils.EnvList("RPC_URLS", []string{DefaultEndpoint}),
		Timeout:   FallbackTimeout,
		RPS:       utils.EnvInt("RPC_RPS", 50),
		Burst:     utils.EnvInt("RPC_BURST", 100),
	}
}

// NewHTTPWithOpts creates a new HTTPClient with the given options.
func NewHTTPWithOpts(o Opts) *HTTPClient {
	if o.RPS <= 0 {
		o.RPS = 20
	}
	if o.Burst <= 0 {
		o.Burst = 40
	}
	if o.Timeout <= 0 {
		o.Timeout = FallbackTimeout
	}
	if o.BreakerFailures <= 0 {
		o.BreakerFailures = 3
	}
	if o.BreakerCooldown <= 0 {
		o.BreakerCooldown = 5 * time.Second
	}

	client := o.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: o.Timeout}
	} else if client.Timeout == 0 {
		client.Timeout = o.Timeout
	}

	c := &HTTPClient{
		endpoints:        utils.Dedup(o.Endpoints),
		client:           client,
		maxTokens:        int64(o.Burst),
		refillEvery:      time.Second / time.Duration(o.RPS),
		breakers:         xsync.NewMap[string, breakerState](),
		breakerThreshold: o.BreakerFailures,
		breakerCooldown:  o.BreakerCooldown,
	}
	c.tokens = c.maxTokens
	c.lastRefill.Store(time.Now())
	return c
}

// refill refills the token-bucket with new tokens if necessary.
func (c *HTTPClient) refill() {
	last := c.lastRefill.Load().(time.Time)
	now := time.Now()
	if now.Sub(last) >= c.refillEvery {
		if atomic.LoadInt64(&c.tokens) < c.maxTokens {
			atomic.AddInt64(&c.tokens, 1)
		}
		c.lastRefill.Store(now)
	}
}

// acquire takes a token from the bucket, waiting for a refill if none is left.
func (c *HTTPClient) acquire(ctx context.Context) error {
	for {
		c.refill()
		if atomic.AddInt64(&c.tokens, -1) >= 0 {
			return nil
		}
		atomic.AddInt64(&c.tokens, 1)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.refillEvery / 2):
		}
	}
}

// isOpen reports whether the breaker of ep is OPEN. An expired breaker is reset.
func (c *HTTPClient) isOpen(ep string) bool {
	open := false
	c.breakers.Compute(ep, func(st breakerState, loaded bool) (breakerState, xsync.ComputeOp) {
		if !loaded || st.openUntil.IsZero() {
			return st, xsync.CancelOp
		}
		if time.Now().After(st.openUntil) {
			return breakerState{}, xsync.DeleteOp
		}
		open = true
		return st, xsync.CancelOp
	})
	return open
}

// noteFailure marks an endpoint as failed and opens the circuit-breaker if the failure count exceeds the threshold.
func (c *HTTPClient) noteFailure(ep string) {
	c.breakers.Compute(ep, func(st breakerState, _ bool) (breakerState, xsync.ComputeOp) {
		st.failures++
		if st.failures >= c.breakerThreshold {
			st.openUntil = time.Now().Add(c.breakerCooldown)
		}
		return st, xsync.UpdateOp
	})
}

// noteSuccess closes the breaker of ep.
func (c *HTTPClient) noteSuccess(ep string) {
	c.breakers.Delete(ep)
}

// doJSON sends an HTTP request to a configured endpoint with the given method, path, and JSON payload and processes the response.
// It moves on to the next endpoint when an attempt fails due to the circuit-breaker, transport or server-side errors.
// The response body is optionally unmarshalled into the `out` parameter if provided.
// Returns the last error when no endpoint produced a usable response.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	if len(c.endpoints) == 0 {
		return fmt.Errorf("no endpoints configured")
	}

	var body []byte
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = b
	}

	lastErr := fmt.Errorf("all endpoints unavailable")
	for _, ep := range c.endpoints {
		// Skip endpoints whose breaker is OPEN.
		if c.isOpen(ep) {
			continue
		}

		if err := c.acquire(ctx); err != nil {
			return err
		}

		req, reqErr := http.NewRequestWithContext(ctx, method, ep+path, bytes.NewReader(body))
		if reqErr != nil {
			// Request creation failed: not an endpoint failure, just return.
			return reqErr
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return lastErr
			}
			c.noteFailure(ep)
			continue
		}

		// From here on, always drain+close the body before continuing/returning.
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server %d", resp.StatusCode)
			c.noteFailure(ep)
			_ = drainAndClose(resp.Body)
			continue
		}
		if resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("http %d", resp.StatusCode)
			_ = drainAndClose(resp.Body)
			continue
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				_ = drainAndClose(resp.Body)
				lastErr = fmt.Errorf("decode response from %s: %w", ep, err)
				continue
			}
		}

		c.noteSuccess(ep)
		return drainAndClose(resp.Body)
	}

	return lastErr
}

// drainAndClose drains the body so the transport can reuse the connection, then closes it.
func drainAndClose(rc io.ReadCloser) error {
	if rc == nil {
		return nil
	}
	_, _ = io.Copy(io.Discard, rc)
	return rc.Close()
}
