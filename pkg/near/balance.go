// Package near validates NEAR identifiers and balances before they reach the store.
package near

import (
	"github.com/holiman/uint256"
)

// ParseBalance parses a decimal unsigned 128-bit balance.
// Anything else (empty, signs, non-digits, overflow) is rejected so that callers treat
// the value as unknown rather than zero.
func ParseBalance(s string) (*uint256.Int, bool) {
	if s == "" || len(s) > 78 {
		return nil, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, false
		}
	}
	v, err := uint256.FromDecimal(s)
	if err != nil || v.BitLen() > 128 {
		return nil, false
	}
	return v, true
}

// NormalizeBalance returns the canonical decimal form of s, or nil when s is not a balance.
func NormalizeBalance(s string) *string {
	v, ok := ParseBalance(s)
	if !ok {
		return nil
	}
	out := v.Dec()
	return &out
}
