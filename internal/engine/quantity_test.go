package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveQuantityFromVehicleCapacity(t *testing.T) {
	liters, ok := DeriveQuantity(2, 5000, 0, false)
	require.True(t, ok)
	assert.Equal(t, 10000, liters)
}

func TestDeriveQuantityManualOverrideWins(t *testing.T) {
	liters, ok := DeriveQuantity(3, 5000, 4000, true)
	require.True(t, ok)
	assert.Equal(t, 12000, liters)
}

func TestDeriveQuantityOverrideFlagWithoutValueFallsBack(t *testing.T) {
	liters, ok := DeriveQuantity(2, 5000, 0, true)
	require.True(t, ok)
	assert.Equal(t, 10000, liters)
}

func TestDeriveQuantityNoCapacityKnown(t *testing.T) {
	_, ok := DeriveQuantity(2, 0, 0, false)
	assert.False(t, ok)
}

func TestDeriveQuantityLoadCountFloor(t *testing.T) {
	liters, ok := DeriveQuantity(0, 6000, 0, false)
	require.True(t, ok)
	assert.Equal(t, 6000, liters)
}

func TestDeriveQuantityIdempotent(t *testing.T) {
	first, ok1 := DeriveQuantity(2, 5000, 0, false)
	second, ok2 := DeriveQuantity(2, 5000, 0, false)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestQuantityUpToDateSkipsRedundantWrite(t *testing.T) {
	derived, ok := DeriveQuantity(2, 5000, 0, false)
	require.True(t, ok)

	assert.True(t, QuantityUpToDate(decimal.NewFromInt(10000), derived))
	assert.False(t, QuantityUpToDate(decimal.NewFromInt(9000), derived))
}
