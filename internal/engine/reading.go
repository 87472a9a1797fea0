package engine

// ComputeVolume converts a KL meter reading pair into liters.
//
// Metered locations: volume = (current - previous) * 1000, and a decreasing
// reading is an InvalidReadingError rather than a clamped zero. Manual-yield
// locations take manualLiters as authoritative; their readings are
// informational and not validated, since manual rows legitimately carry a
// zero current reading.
func ComputeVolume(currentReading, previousReading int, manualYield bool, manualLiters int) (int, error) {
	if manualYield {
		return manualLiters, nil
	}
	if currentReading < previousReading {
		return 0, &InvalidReadingError{Current: currentReading, Previous: previousReading}
	}
	return (currentReading - previousReading) * 1000, nil
}
