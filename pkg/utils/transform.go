package utils

import (
	"strings"
)

// Dedup trims whitespace and trailing slashes, drops empty entries and keeps the first
// occurrence of every value in order.
func Dedup(in []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, e := range in {
		e = strings.TrimRight(strings.TrimSpace(e), "/")
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
