package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestVendorCostPerLiter(t *testing.T) {
	rate := VendorRateTerms{CostType: CostTypePerLiter, RateValue: dec("0.05")}

	got := VendorCost(rate, dec("5000"), 1, false)
	assert.True(t, got.TotalCost.Equal(dec("250")), "got %s", got.TotalCost)
	assert.True(t, got.CostPerKL.Equal(dec("50")))
}

func TestVendorCostPerLiterLinearity(t *testing.T) {
	rate := VendorRateTerms{CostType: CostTypePerLiter, RateValue: dec("0.05")}

	single := VendorCost(rate, dec("3200"), 1, false)
	double := VendorCost(rate, dec("6400"), 1, false)
	assert.True(t, double.TotalCost.Equal(single.TotalCost.Mul(decimal.NewFromInt(2))))
}

func TestVendorCostPerLoadDirect(t *testing.T) {
	rate := VendorRateTerms{CostType: CostTypePerLoad, RateValue: dec("900"), VehicleCapacity: 12000}

	got := VendorCost(rate, dec("24000"), 2, false)
	assert.True(t, got.TotalCost.Equal(dec("1800")), "got %s", got.TotalCost)
	assert.True(t, got.CostPerKL.Equal(dec("75")))
}

func TestVendorCostPerLoadManualOverrideUsesQuantity(t *testing.T) {
	// Manual quantity override must price partial loads by KL, not full loads.
	rate := VendorRateTerms{CostType: CostTypePerLoad, RateValue: dec("900"), VehicleCapacity: 12000}

	got := VendorCost(rate, dec("6000"), 1, true)
	assert.True(t, got.TotalCost.Equal(dec("450")), "got %s", got.TotalCost)
}

func TestVendorCostPrefersStoredCostPerKL(t *testing.T) {
	rate := VendorRateTerms{
		CostType:  CostTypePerLiter,
		RateValue: dec("0.05"),
		CostPerKL: decimal.NewNullDecimal(dec("48")),
	}

	got := VendorCost(rate, dec("1000"), 1, false)
	assert.True(t, got.TotalCost.Equal(dec("48")))
}

func TestPipelineCost(t *testing.T) {
	got := PipelineCost(dec("0.02"), dec("15000"))
	assert.True(t, got.TotalCost.Equal(dec("300")), "got %s", got.TotalCost)
	assert.True(t, got.CostPerKL.Equal(dec("20")))
}

func TestInternalCostFlatPerLoad(t *testing.T) {
	// 2 loads at Rs.800/load: cost ignores quantity entirely.
	got := InternalCost(dec("800"), 2)
	assert.True(t, got.TotalCost.Equal(dec("1600")), "got %s", got.TotalCost)

	same := InternalCost(dec("800"), 2)
	assert.True(t, got.TotalCost.Equal(same.TotalCost))
}

func TestPerLoadUnitCosts(t *testing.T) {
	perLiter, perKL := PerLoadUnitCosts(dec("800"), 5000)
	assert.True(t, perLiter.Equal(dec("0.16")), "got %s", perLiter)
	assert.True(t, perKL.Equal(dec("160")))

	perLiter, perKL = PerLoadUnitCosts(dec("800"), 0)
	assert.True(t, perLiter.IsZero())
	assert.True(t, perKL.IsZero())
}

func TestRoundCurrencyHalfUp(t *testing.T) {
	assert.Equal(t, "250.01", RoundCurrency(dec("250.005")).StringFixed(2))
	assert.Equal(t, "250.00", RoundCurrency(dec("250.004")).StringFixed(2))
}
