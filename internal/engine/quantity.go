package engine

import "github.com/shopspring/decimal"

// DeriveQuantity computes a purchase quantity in liters from load count and
// capacity. A manual capacity override beats the vehicle capacity; with
// neither available the quantity stays whatever the user typed (ok=false).
// The derivation is idempotent: same inputs, same output.
func DeriveQuantity(loadCount, vehicleCapacityLiters, manualCapacityLiters int, manualOverride bool) (liters int, ok bool) {
	if loadCount < 1 {
		loadCount = 1
	}
	if manualOverride && manualCapacityLiters > 0 {
		return manualCapacityLiters * loadCount, true
	}
	if vehicleCapacityLiters > 0 {
		return vehicleCapacityLiters * loadCount, true
	}
	return 0, false
}

// QuantityUpToDate reports whether the stored quantity already equals the
// derived one, so callers can skip redundant writes instead of looping.
func QuantityUpToDate(stored decimal.Decimal, derivedLiters int) bool {
	return stored.Equal(decimal.NewFromInt(int64(derivedLiters)))
}
