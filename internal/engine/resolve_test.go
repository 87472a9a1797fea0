package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRate struct {
	id        uint
	effective time.Time
	value     decimal.Decimal
}

func (f fakeRate) EffectiveOn() time.Time { return f.effective }
func (f fakeRate) RecordID() uint         { return f.id }

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolvePicksLatestEffective(t *testing.T) {
	rates := []fakeRate{
		{id: 1, effective: d("2024-01-01"), value: decimal.RequireFromString("0.04")},
		{id: 2, effective: d("2024-03-01"), value: decimal.RequireFromString("0.05")},
	}

	got, ok := Resolve(rates, d("2024-03-10"))
	require.True(t, ok)
	assert.Equal(t, uint(2), got.id)
	assert.True(t, got.value.Equal(decimal.RequireFromString("0.05")))
}

func TestResolveIgnoresFutureRates(t *testing.T) {
	rates := []fakeRate{
		{id: 1, effective: d("2024-01-01")},
		{id: 2, effective: d("2024-06-01")},
	}

	got, ok := Resolve(rates, d("2024-02-15"))
	require.True(t, ok)
	assert.Equal(t, uint(1), got.id)
}

func TestResolveNotFound(t *testing.T) {
	rates := []fakeRate{{id: 1, effective: d("2024-05-01")}}

	_, ok := Resolve(rates, d("2024-04-30"))
	assert.False(t, ok)

	_, ok = Resolve([]fakeRate{}, d("2024-04-30"))
	assert.False(t, ok)
}

func TestResolveSameDateHighestIDWins(t *testing.T) {
	rates := []fakeRate{
		{id: 7, effective: d("2024-02-01")},
		{id: 9, effective: d("2024-02-01")},
		{id: 8, effective: d("2024-02-01")},
	}

	got, ok := Resolve(rates, d("2024-02-01"))
	require.True(t, ok)
	assert.Equal(t, uint(9), got.id)
}

func TestResolveOrderIndependent(t *testing.T) {
	rates := []fakeRate{
		{id: 1, effective: d("2024-01-01")},
		{id: 2, effective: d("2024-02-01")},
		{id: 3, effective: d("2024-02-01")},
		{id: 4, effective: d("2024-04-01")}, // future relative to target
		{id: 5, effective: d("2023-11-15")},
	}
	target := d("2024-03-01")

	want, ok := Resolve(rates, target)
	require.True(t, ok)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]fakeRate, len(rates))
		copy(shuffled, rates)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, ok := Resolve(shuffled, target)
		require.True(t, ok)
		assert.Equal(t, want.id, got.id)
	}
}

func TestResolveTargetEqualsEffectiveDate(t *testing.T) {
	rates := []fakeRate{{id: 1, effective: d("2024-03-01")}}

	got, ok := Resolve(rates, d("2024-03-01"))
	require.True(t, ok)
	assert.Equal(t, uint(1), got.id)
}
