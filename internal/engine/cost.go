package engine

import (
	"github.com/shopspring/decimal"
)

// Cost type constants, mirroring the vendor rate table.
const (
	CostTypePerLoad  = "Per_Load"
	CostTypePerLiter = "Per_Liter"
)

var thousand = decimal.NewFromInt(1000)

// CostResult is the outcome of a cost calculation.
type CostResult struct {
	TotalCost decimal.Decimal
	CostPerKL decimal.Decimal
}

// VendorRateTerms is the resolved vendor rate a cost calculation runs against.
type VendorRateTerms struct {
	CostType        string // Per_Load or Per_Liter
	RateValue       decimal.Decimal
	VehicleCapacity int                 // liters per load, 0 when unknown
	CostPerKL       decimal.NullDecimal // stored calculated_cost_per_kl, if any
}

// VendorCost prices a vendor purchase. Per_Load rates multiply directly by
// load count unless the quantity was manually overridden; every other case
// goes through cost-per-KL over the quantity, preferring the stored
// calculated value to avoid recomputed precision drift.
func VendorCost(rate VendorRateTerms, quantityLiters decimal.Decimal, loadCount int, manualOverride bool) CostResult {
	perKL := vendorCostPerKL(rate)

	if rate.CostType == CostTypePerLoad && !manualOverride {
		return CostResult{
			TotalCost: rate.RateValue.Mul(decimal.NewFromInt(int64(loadCount))),
			CostPerKL: perKL,
		}
	}

	return CostResult{
		TotalCost: quantityLiters.Div(thousand).Mul(perKL),
		CostPerKL: perKL,
	}
}

func vendorCostPerKL(rate VendorRateTerms) decimal.Decimal {
	if rate.CostPerKL.Valid {
		return rate.CostPerKL.Decimal
	}
	switch {
	case rate.CostType == CostTypePerLiter:
		return rate.RateValue.Mul(thousand)
	case rate.CostType == CostTypePerLoad && rate.VehicleCapacity > 0:
		return rate.RateValue.Div(decimal.NewFromInt(int64(rate.VehicleCapacity))).Mul(thousand)
	}
	return decimal.Zero
}

// PipelineCost prices corporation water. quantityLiters must already be
// normalized from the KL meter delta; callers convert exactly once.
func PipelineCost(costPerLiter, quantityLiters decimal.Decimal) CostResult {
	return CostResult{
		TotalCost: costPerLiter.Mul(quantityLiters),
		CostPerKL: costPerLiter.Mul(thousand),
	}
}

// InternalCost prices an internal vehicle trip: flat cost per load times load
// count. Quantity plays no role, the trucking cost is fixed per trip.
func InternalCost(costPerLoad decimal.Decimal, loadCount int) CostResult {
	return CostResult{TotalCost: costPerLoad.Mul(decimal.NewFromInt(int64(loadCount)))}
}

// PerLoadUnitCosts derives cost-per-liter and cost-per-KL from a per-load
// rate and vehicle capacity, for the calculated_* rate columns. Returns zeros
// when capacity is unknown.
func PerLoadUnitCosts(costPerLoad decimal.Decimal, capacityLiters int) (perLiter, perKL decimal.Decimal) {
	if capacityLiters <= 0 {
		return decimal.Zero, decimal.Zero
	}
	perLiter = costPerLoad.Div(decimal.NewFromInt(int64(capacityLiters)))
	return perLiter, perLiter.Mul(thousand)
}

// RoundCurrency rounds half-up to two places for display and persistence.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
