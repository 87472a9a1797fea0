package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, 15, d.Day())

	_, err = parseDate("15/03/2025")
	assert.Error(t, err)

	_, err = parseDate("")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount("rate_value", "123.45")
	require.NoError(t, err)
	assert.Equal(t, "123.45", amount.String())

	_, err = parseAmount("rate_value", "0")
	assert.Error(t, err)

	_, err = parseAmount("rate_value", "-5")
	assert.Error(t, err)

	_, err = parseAmount("rate_value", "abc")
	assert.Error(t, err)
}

func TestNormalizePageAndLimit(t *testing.T) {
	assert.Equal(t, 1, normalizePage(0))
	assert.Equal(t, 1, normalizePage(-3))
	assert.Equal(t, 7, normalizePage(7))

	assert.Equal(t, 20, normalizeLimit(0))
	assert.Equal(t, 50, normalizeLimit(50))
}
