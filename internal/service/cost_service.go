package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"watertracker/internal/engine"
	"watertracker/internal/model"
	"watertracker/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CalculateCostRequest struct {
	SourceID             uint   `json:"source_id" binding:"required"`
	Date                 string `json:"date" binding:"required"`
	WaterType            string `json:"water_type"`
	LoadCount            *int   `json:"load_count"`
	QuantityLiters       *int   `json:"quantity_liters"`
	VehicleID            *uint  `json:"vehicle_id"`
	LoadingLocationID    *uint  `json:"loading_location_id"`
	ManualCapacityLiters *int   `json:"manual_capacity_liters"`
	ManualOverride       bool   `json:"manual_override"`
	MeterReadingCurrent  *int   `json:"meter_reading_current"`
	MeterReadingPrevious *int   `json:"meter_reading_previous"`
}

type CalculateCostResponse struct {
	TotalCost      string `json:"total_cost"`
	CostPerKL      string `json:"cost_per_kl"`
	QuantityLiters string `json:"quantity_liters"`
	RateID         uint   `json:"rate_id"`
	SourceType     string `json:"source_type"`
}

// PriceParams is the fully-resolved input for pricing one entry. The caller
// has already normalized QuantityLiters (pipeline KL deltas are converted to
// liters exactly once, before pricing).
type PriceParams struct {
	Source            *model.MasterSource
	Date              time.Time
	WaterType         string
	LoadCount         int
	VehicleID         uint
	LoadingLocationID uint
	ManualOverride    bool
	QuantityLiters    decimal.Decimal
}

// Priced is the pricing outcome plus the rate snapshot columns persisted on
// the entry.
type Priced struct {
	TotalCost    decimal.Decimal
	CostPerKL    decimal.NullDecimal
	CostPerLiter decimal.NullDecimal
	RateID       uint
}

// CostService resolves the applicable rate for a source and date and prices
// quantities against it. A date with no effective rate is a
// *engine.RateNotConfiguredError, never a zero cost.
type CostService interface {
	Calculate(ctx context.Context, req CalculateCostRequest) (*CalculateCostResponse, error)
	Price(ctx context.Context, params PriceParams) (*Priced, error)
}

type costService struct {
	rateRepo    repository.RateRepository
	sourceRepo  repository.SourceRepository
	vehicleRepo repository.VehicleRepository
}

func NewCostService(
	rateRepo repository.RateRepository,
	sourceRepo repository.SourceRepository,
	vehicleRepo repository.VehicleRepository,
) CostService {
	return &costService{
		rateRepo:    rateRepo,
		sourceRepo:  sourceRepo,
		vehicleRepo: vehicleRepo,
	}
}

func (s *costService) Price(ctx context.Context, params PriceParams) (*Priced, error) {
	switch params.Source.SourceType {
	case model.SourceTypeVendor:
		return s.priceVendor(ctx, params)
	case model.SourceTypePipeline:
		return s.pricePipeline(ctx, params)
	case model.SourceTypeInternalBore, model.SourceTypeInternalWell:
		return s.priceInternal(ctx, params)
	}
	return nil, fmt.Errorf("unknown source type %q", params.Source.SourceType)
}

func (s *costService) priceVendor(ctx context.Context, params PriceParams) (*Priced, error) {
	candidates, err := s.rateRepo.VendorRateCandidates(ctx, params.Source.ID, params.WaterType)
	if err != nil {
		return nil, err
	}
	rate, ok := engine.Resolve(candidates, params.Date)
	if !ok {
		return nil, &engine.RateNotConfiguredError{Kind: engine.KindVendor, Date: params.Date}
	}

	capacity := 0
	if rate.VehicleCapacity != nil {
		capacity = *rate.VehicleCapacity
	}
	terms := engine.VendorRateTerms{
		CostType:        rate.CostType,
		RateValue:       rate.RateValue,
		VehicleCapacity: capacity,
		CostPerKL:       rate.CalculatedCostPerKL,
	}
	result := engine.VendorCost(terms, params.QuantityLiters, params.LoadCount, params.ManualOverride)

	return &Priced{
		TotalCost:    engine.RoundCurrency(result.TotalCost),
		CostPerKL:    decimal.NewNullDecimal(result.CostPerKL),
		CostPerLiter: rate.CalculatedCostPerLiter,
		RateID:       rate.ID,
	}, nil
}

func (s *costService) pricePipeline(ctx context.Context, params PriceParams) (*Priced, error) {
	candidates, err := s.rateRepo.PipelineRateCandidates(ctx, params.Source.ID)
	if err != nil {
		return nil, err
	}
	rate, ok := engine.Resolve(candidates, params.Date)
	if !ok {
		return nil, &engine.RateNotConfiguredError{Kind: engine.KindPipeline, Date: params.Date}
	}

	result := engine.PipelineCost(rate.CostPerLiter, params.QuantityLiters)
	return &Priced{
		TotalCost:    engine.RoundCurrency(result.TotalCost),
		CostPerKL:    decimal.NewNullDecimal(result.CostPerKL),
		CostPerLiter: decimal.NewNullDecimal(rate.CostPerLiter),
		RateID:       rate.ID,
	}, nil
}

func (s *costService) priceInternal(ctx context.Context, params PriceParams) (*Priced, error) {
	candidates, err := s.rateRepo.InternalRateCandidates(ctx, params.VehicleID, params.LoadingLocationID)
	if err != nil {
		return nil, err
	}
	rate, ok := engine.Resolve(candidates, params.Date)
	if !ok {
		return nil, &engine.RateNotConfiguredError{Kind: engine.KindInternal, Date: params.Date}
	}

	loads := params.LoadCount
	if loads < 1 {
		loads = 1
	}
	result := engine.InternalCost(rate.CostPerLoad, loads)
	return &Priced{
		TotalCost:    engine.RoundCurrency(result.TotalCost),
		CostPerKL:    rate.CalculatedCostPerKL,
		CostPerLiter: rate.CalculatedCostPerLiter,
		RateID:       rate.ID,
	}, nil
}

func (s *costService) Calculate(ctx context.Context, req CalculateCostRequest) (*CalculateCostResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	source, err := s.sourceRepo.FindByID(ctx, req.SourceID)
	if err != nil {
		return nil, errors.New("source not found")
	}

	loadCount := 1
	if req.LoadCount != nil && *req.LoadCount > 0 {
		loadCount = *req.LoadCount
	}

	params := PriceParams{
		Source:         source,
		Date:           date,
		WaterType:      req.WaterType,
		LoadCount:      loadCount,
		ManualOverride: req.ManualOverride,
	}
	if req.VehicleID != nil {
		params.VehicleID = *req.VehicleID
	}
	if req.LoadingLocationID != nil {
		params.LoadingLocationID = *req.LoadingLocationID
	}

	quantity, err := s.resolveQuantity(ctx, source, req, loadCount)
	if err != nil {
		return nil, err
	}
	params.QuantityLiters = quantity

	priced, err := s.Price(ctx, params)
	if err != nil {
		return nil, err
	}

	costPerKL := decimal.Zero
	if priced.CostPerKL.Valid {
		costPerKL = priced.CostPerKL.Decimal
	}
	return &CalculateCostResponse{
		TotalCost:      priced.TotalCost.StringFixed(2),
		CostPerKL:      engine.RoundCurrency(costPerKL).StringFixed(2),
		QuantityLiters: quantity.StringFixed(0),
		RateID:         priced.RateID,
		SourceType:     source.SourceType,
	}, nil
}

// resolveQuantity turns the request into liters: pipeline meter deltas
// (KL readings, converted here and nowhere else), an explicit quantity, or a
// loads × capacity derivation.
func (s *costService) resolveQuantity(ctx context.Context, source *model.MasterSource, req CalculateCostRequest, loadCount int) (decimal.Decimal, error) {
	if source.SourceType == model.SourceTypePipeline {
		if req.MeterReadingCurrent == nil || req.MeterReadingPrevious == nil {
			if req.QuantityLiters != nil {
				return decimal.NewFromInt(int64(*req.QuantityLiters)), nil
			}
			return decimal.Decimal{}, errors.New("pipeline cost requires meter readings")
		}
		liters, err := engine.ComputeVolume(*req.MeterReadingCurrent, *req.MeterReadingPrevious, false, 0)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.NewFromInt(int64(liters)), nil
	}

	if req.QuantityLiters != nil && *req.QuantityLiters > 0 {
		return decimal.NewFromInt(int64(*req.QuantityLiters)), nil
	}

	capacity := 0
	if req.VehicleID != nil {
		if vehicle, err := s.vehicleRepo.FindByID(ctx, *req.VehicleID); err == nil {
			capacity = vehicle.CapacityLiters
		}
	}
	manualCapacity := 0
	if req.ManualCapacityLiters != nil {
		manualCapacity = *req.ManualCapacityLiters
	}

	liters, ok := engine.DeriveQuantity(loadCount, capacity, manualCapacity, req.ManualOverride)
	if !ok {
		return decimal.Decimal{}, errors.New("cannot derive quantity: no vehicle capacity or manual quantity supplied")
	}
	return decimal.NewFromInt(int64(liters)), nil
}
