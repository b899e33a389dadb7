package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchStrings(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, BatchStrings(items, 2))
	assert.Equal(t, [][]string{items}, BatchStrings(items, 0))
	assert.Equal(t, [][]string{items}, BatchStrings(items, 10))
	assert.Empty(t, BatchStrings(nil, 3))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("WALLET_GATEWAY_TEST_ENV", "value")
	assert.Equal(t, "value", GetEnv("WALLET_GATEWAY_TEST_ENV", "fallback"))

	t.Setenv("WALLET_GATEWAY_TEST_ENV", "")
	assert.Equal(t, "fallback", GetEnv("WALLET_GATEWAY_TEST_ENV", "fallback"))
}
