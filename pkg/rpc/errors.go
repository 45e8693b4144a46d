package rpc

import "fmt"

// UpstreamError is returned when a whole JSON-RPC call failed (transport, timeout, status
// code or an undecodable envelope).
type UpstreamError struct {
	Method string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("rpc %s: %v", e.Method, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
