package rpc

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type jsonRPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      string `json:"id"`
}

type callFunctionParams struct {
	RequestType string `json:"request_type"`
	Finality    string `json:"finality"`
	AccountID   string `json:"account_id"`
	MethodName  string `json:"method_name"`
	ArgsBase64  string `json:"args_base64"`
}

type jsonRPCResponse struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  json.RawMessage `json:"error,omitempty"`
}

// index returns the request position encoded in the response id, accepting both "3" and 3.
func (r jsonRPCResponse) index(n int) (int, bool) {
	var raw string
	if err := json.Unmarshal(r.ID, &raw); err != nil {
		raw = string(r.ID)
	}
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// callFunctionResult is the result of a call_function query. A contract panic is reported
// in Error with an empty Result.
type callFunctionResult struct {
	Result      byteArray `json:"result"`
	Error       string    `json:"error,omitempty"`
	BlockHeight uint64    `json:"block_height"`
	BlockHash   string    `json:"block_hash"`
}

// byteArray decodes the JSON array of numbers used for raw call results.
type byteArray []byte

func (b *byteArray) UnmarshalJSON(data []byte) error {
	var nums []int
	if err := json.Unmarshal(data, &nums); err != nil {
		return err
	}
	out := make([]byte, len(nums))
	for i, n := range nums {
		if n < 0 || n > 255 {
			return fmt.Errorf("byte out of range: %d", n)
		}
		out[i] = byte(n)
	}
	*b = out
	return nil
}
