package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeVolumeMeterDelta(t *testing.T) {
	// Readings are in KL: 135 - 120 = 15 KL = 15,000 liters.
	liters, err := ComputeVolume(135, 120, false, 0)
	require.NoError(t, err)
	assert.Equal(t, 15000, liters)
}

func TestComputeVolumeZeroDelta(t *testing.T) {
	liters, err := ComputeVolume(120, 120, false, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, liters)
}

func TestComputeVolumeRejectsDecreasingReading(t *testing.T) {
	_, err := ComputeVolume(119, 120, false, 0)
	require.Error(t, err)

	var invalid *InvalidReadingError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 119, invalid.Current)
	assert.Equal(t, 120, invalid.Previous)
}

func TestComputeVolumeNeverNegative(t *testing.T) {
	for current := 0; current <= 50; current += 5 {
		for previous := 0; previous <= current; previous += 5 {
			liters, err := ComputeVolume(current, previous, false, 0)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, liters, 0)
		}
	}
}

func TestComputeVolumeManualYield(t *testing.T) {
	// Manual locations take the supplied liters; readings are informational.
	liters, err := ComputeVolume(0, 40, true, 7500)
	require.NoError(t, err)
	assert.Equal(t, 7500, liters)
}
