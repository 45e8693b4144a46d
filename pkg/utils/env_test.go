package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "-3")
	t.Setenv("TEST_FLOAT", "2.5")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_LIST", " http://a/ ,http://b,,http://a")

	assert.Equal(t, "value", Env("TEST_STR", "def"))
	assert.Equal(t, "def", Env("TEST_MISSING", "def"))
	assert.Equal(t, 42, EnvInt("TEST_INT", 1))
	assert.Equal(t, 1, EnvInt("TEST_BAD_INT", 1))
	assert.Equal(t, int64(42), EnvInt64("TEST_INT", 1))
	assert.Equal(t, uint64(42), EnvUint64("TEST_INT", 1))
	assert.Equal(t, 2.5, EnvFloat("TEST_FLOAT", 1))
	assert.True(t, EnvBool("TEST_BOOL", false))
	assert.Equal(t, []string{"http://a", "http://b"}, EnvList("TEST_LIST", nil))
	assert.Equal(t, []string{"x"}, EnvList("TEST_MISSING", []string{"x"}))
}

func TestDedup(t *testing.T) {
	assert.Equal(t, []string{"alice.near", "bob.near"}, Dedup([]string{"alice.near", "", "bob.near", "alice.near"}))
	assert.Empty(t, Dedup(nil))
}
