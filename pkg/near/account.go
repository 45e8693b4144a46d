package near

import (
	"errors"
	"regexp"
)

const (
	minAccountIDLen = 2
	maxAccountIDLen = 64
)

// ErrInvalidAccountID is returned for strings that are not valid account ids.
var ErrInvalidAccountID = errors.New("invalid account id")

// Lowercase alphanumeric parts joined by single '-', '_' or '.' separators.
var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[-_])*[a-z\d]+\.)*([a-z\d]+[-_])*[a-z\d]+$`)

// AccountID is a validated account (or token contract) identifier.
type AccountID string

// ParseAccountID validates s as an account id.
func ParseAccountID(s string) (AccountID, error) {
	if len(s) < minAccountIDLen || len(s) > maxAccountIDLen || !accountIDPattern.MatchString(s) {
		return "", ErrInvalidAccountID
	}
	return AccountID(s), nil
}

func (a AccountID) String() string {
	return string(a)
}
