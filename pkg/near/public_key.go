package near

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/btcsuite/btcutil/base58"
)

// KeyType is the curve of a public key.
type KeyType string

const (
	ED25519   KeyType = "ed25519"
	SECP256K1 KeyType = "secp256k1"
)

// ErrInvalidPublicKey is returned for strings that are not valid public keys.
var ErrInvalidPublicKey = errors.New("invalid public key")

// PublicKey is a parsed "<curve>:<base58>" public key.
type PublicKey struct {
	Type  KeyType
	Bytes []byte
}

// ParsePublicKey parses "ed25519:<base58>" or "secp256k1:<base58>". A key without a curve
// prefix is read as ed25519.
func ParsePublicKey(s string) (PublicKey, error) {
	keyType, data := ED25519, s
	if prefix, rest, ok := strings.Cut(s, ":"); ok {
		keyType, data = KeyType(prefix), rest
	}

	var size int
	switch keyType {
	case ED25519:
		size = 32
	case SECP256K1:
		size = 64
	default:
		return PublicKey{}, ErrInvalidPublicKey
	}

	if data == "" {
		return PublicKey{}, ErrInvalidPublicKey
	}
	raw := base58.Decode(data)
	if len(raw) != size {
		return PublicKey{}, ErrInvalidPublicKey
	}
	return PublicKey{Type: keyType, Bytes: raw}, nil
}

// String renders the key in its canonical "<curve>:<base58>" form.
func (k PublicKey) String() string {
	return string(k.Type) + ":" + base58.Encode(k.Bytes)
}

// ImplicitAccount returns the implicit account id owned by an ed25519 key (the hex of the
// key bytes). It returns false for other curves.
func (k PublicKey) ImplicitAccount() (AccountID, bool) {
	if k.Type != ED25519 {
		return "", false
	}
	return AccountID(hex.EncodeToString(k.Bytes)), true
}
