package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("bodrum-2026")
	assert.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword("bodrum-2026", hash)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("mauvais", hash)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	ok, err := VerifyPassword("x", "pas-un-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestFormatAmount(t *testing.T) {
	cases := map[string]struct {
		amount   int64
		expected string
	}{
		"court":    {amount: 500, expected: "500"},
		"milliers": {amount: 45000, expected: "45 000"},
		"millions": {amount: 12345678, expected: "12 345 678"},
		"zéro":     {amount: 0, expected: "0"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, formatAmount(tc.amount))
		})
	}
}

func TestShortKey(t *testing.T) {
	assert.Equal(t, "abc", shortKey("abc"))
	assert.Equal(t, "345678", shortKey("uuid-12345678"))
}
