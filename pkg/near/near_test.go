package near

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBalance(t *testing.T) {
	tests := []struct {
		in    string
		ok    bool
		canon string
	}{
		{"0", true, "0"},
		{"000123", true, "123"},
		{"340282366920938463463374607431768211455", true, "340282366920938463463374607431768211455"},
		{"340282366920938463463374607431768211456", false, ""},
		{"-1", false, ""},
		{"+5", false, ""},
		{"1.5", false, ""},
		{"null", false, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, ok := ParseBalance(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.canon, v.Dec())
			}
		})
	}
}

func TestParseAccountID(t *testing.T) {
	valid := []string{
		"near",
		"alice.near",
		"usdt.tether-token.near",
		"a_b-c.d",
		"0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef",
		"17208628f84f5d6ad33f0da3bbbeb27ffcb398eac501a31bd6ad2011e36133a1",
	}
	for _, s := range valid {
		_, err := ParseAccountID(s)
		assert.NoError(t, err, s)
	}

	invalid := []string{
		"",
		"a",
		"Alice.near",
		"alice..near",
		".alice",
		"alice.",
		"alice-.near",
		"bob__near",
		"alice near",
		"alice@near",
		strings.Repeat("a", 65),
	}
	for _, s := range invalid {
		_, err := ParseAccountID(s)
		assert.ErrorIs(t, err, ErrInvalidAccountID, s)
	}
}

func TestParsePublicKey(t *testing.T) {
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	encoded := base58.Encode(raw)

	pk, err := ParsePublicKey("ed25519:" + encoded)
	require.NoError(t, err)
	assert.Equal(t, ED25519, pk.Type)
	assert.Equal(t, raw, pk.Bytes)
	assert.Equal(t, "ed25519:"+encoded, pk.String())

	implicit, ok := pk.ImplicitAccount()
	require.True(t, ok)
	assert.Equal(t, AccountID("0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"), implicit)

	bare, err := ParsePublicKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, pk, bare)

	secp := make([]byte, 64)
	secp[0] = 9
	sk, err := ParsePublicKey("secp256k1:" + base58.Encode(secp))
	require.NoError(t, err)
	_, ok = sk.ImplicitAccount()
	assert.False(t, ok)

	for _, s := range []string{"", "ed25519:", "ed25519:0OIl", "rsa:" + encoded, "secp256k1:" + encoded, "ed25519:" + base58.Encode(raw[:31])} {
		_, err := ParsePublicKey(s)
		assert.ErrorIs(t, err, ErrInvalidPublicKey, s)
	}
}
