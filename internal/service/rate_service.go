package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"watertracker/internal/engine"
	"watertracker/internal/model"
	"watertracker/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// --- DTOs ---

type InternalRateRequest struct {
	VehicleID         uint   `json:"vehicle_id" binding:"required"`
	LoadingLocationID uint   `json:"loading_location_id" binding:"required"`
	CostPerLoad       string `json:"cost_per_load" binding:"required"`
	EffectiveDate     string `json:"effective_date" binding:"required"`
}

type VendorRateRequest struct {
	SourceID        uint   `json:"source_id" binding:"required"`
	WaterType       string `json:"water_type" binding:"required"`
	CostType        string `json:"cost_type" binding:"required,oneof=Per_Load Per_Liter"`
	RateValue       string `json:"rate_value" binding:"required"`
	VehicleCapacity *int   `json:"vehicle_capacity"`
	EffectiveDate   string `json:"effective_date" binding:"required"`
}

type PipelineRateRequest struct {
	SourceID      uint   `json:"source_id" binding:"required"`
	CostPerLiter  string `json:"cost_per_liter" binding:"required"`
	EffectiveDate string `json:"effective_date" binding:"required"`
}

type GeneralRateRequest struct {
	Date              string `json:"date" binding:"required"`
	NormalWaterRate   string `json:"normal_water_rate" binding:"required"`
	DrinkingWaterRate string `json:"drinking_water_rate" binding:"required"`
	EffectiveDate     string `json:"effective_date"`
}

// RateService is business logic for the three rate histories and the general
// water rates. Creating or updating a per-load rate also fills the derived
// calculated_cost_per_liter / calculated_cost_per_kl columns.
type RateService interface {
	CreateInternalRate(ctx context.Context, userID string, req InternalRateRequest) (*model.RateHistoryInternalVehicle, error)
	UpdateInternalRate(ctx context.Context, userID string, id uint, req InternalRateRequest) (*model.RateHistoryInternalVehicle, error)
	DeleteInternalRate(ctx context.Context, userID string, id uint) error
	ListInternalRates(ctx context.Context, page, limit int) ([]model.RateHistoryInternalVehicle, int64, error)

	CreateVendorRate(ctx context.Context, userID string, req VendorRateRequest) (*model.RateHistoryVendor, error)
	UpdateVendorRate(ctx context.Context, userID string, id uint, req VendorRateRequest) (*model.RateHistoryVendor, error)
	DeleteVendorRate(ctx context.Context, userID string, id uint) error
	ListVendorRates(ctx context.Context, page, limit int) ([]model.RateHistoryVendor, int64, error)

	CreatePipelineRate(ctx context.Context, userID string, req PipelineRateRequest) (*model.RateHistoryPipeline, error)
	UpdatePipelineRate(ctx context.Context, userID string, id uint, req PipelineRateRequest) (*model.RateHistoryPipeline, error)
	DeletePipelineRate(ctx context.Context, userID string, id uint) error
	ListPipelineRates(ctx context.Context, page, limit int) ([]model.RateHistoryPipeline, int64, error)

	CreateGeneralRate(ctx context.Context, userID string, req GeneralRateRequest) (*model.GeneralWaterRate, error)
	DeleteGeneralRate(ctx context.Context, userID string, id uint) error
	ListGeneralRates(ctx context.Context) ([]model.GeneralWaterRate, error)
}

type rateService struct {
	rateRepo    repository.RateRepository
	vehicleRepo repository.VehicleRepository
	sourceRepo  repository.SourceRepository
	audit       AuditService
}

func NewRateService(
	rateRepo repository.RateRepository,
	vehicleRepo repository.VehicleRepository,
	sourceRepo repository.SourceRepository,
	audit AuditService,
) RateService {
	return &rateService{
		rateRepo:    rateRepo,
		vehicleRepo: vehicleRepo,
		sourceRepo:  sourceRepo,
		audit:       audit,
	}
}

func parseDate(value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return d, nil
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s: %w", field, err)
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("%s must be greater than 0", field)
	}
	return d, nil
}

// --- Internal vehicle rates ---

func (s *rateService) buildInternalRate(ctx context.Context, rate *model.RateHistoryInternalVehicle, req InternalRateRequest) error {
	costPerLoad, err := parseAmount("cost_per_load", req.CostPerLoad)
	if err != nil {
		return err
	}
	effectiveDate, err := parseDate(req.EffectiveDate)
	if err != nil {
		return err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, req.VehicleID)
	if err != nil {
		return errors.New("vehicle not found")
	}

	vehicleID := req.VehicleID
	locationID := req.LoadingLocationID
	rate.VehicleID = &vehicleID
	rate.LoadingLocationID = &locationID
	rate.VehicleName = vehicle.VehicleName
	capacity := vehicle.CapacityLiters
	rate.CapacityLiters = &capacity
	rate.CostPerLoad = costPerLoad
	rate.EffectiveDate = effectiveDate

	perLiter, perKL := engine.PerLoadUnitCosts(costPerLoad, vehicle.CapacityLiters)
	rate.CalculatedCostPerLiter = decimal.NewNullDecimal(perLiter)
	rate.CalculatedCostPerKL = decimal.NewNullDecimal(perKL)
	return nil
}

func (s *rateService) CreateInternalRate(ctx context.Context, userID string, req InternalRateRequest) (*model.RateHistoryInternalVehicle, error) {
	rate := &model.RateHistoryInternalVehicle{}
	if err := s.buildInternalRate(ctx, rate, req); err != nil {
		return nil, err
	}
	if err := s.rateRepo.CreateInternalRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create internal rate: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionCreateRate, strconv.Itoa(int(rate.ID)), rate.VehicleName, map[string]interface{}{
		"rate_type": "internal", "cost_per_load": req.CostPerLoad, "effective_date": req.EffectiveDate,
	})
	return rate, nil
}

func (s *rateService) UpdateInternalRate(ctx context.Context, userID string, id uint, req InternalRateRequest) (*model.RateHistoryInternalVehicle, error) {
	rate, err := s.rateRepo.FindInternalRateByID(ctx, id)
	if err != nil {
		return nil, errors.New("internal rate not found")
	}
	if err := s.buildInternalRate(ctx, rate, req); err != nil {
		return nil, err
	}
	if err := s.rateRepo.UpdateInternalRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to update internal rate: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionUpdateRate, strconv.Itoa(int(rate.ID)), rate.VehicleName, map[string]interface{}{
		"rate_type": "internal", "cost_per_load": req.CostPerLoad, "effective_date": req.EffectiveDate,
	})
	return rate, nil
}

func (s *rateService) DeleteInternalRate(ctx context.Context, userID string, id uint) error {
	if err := s.rateRepo.DeleteInternalRate(ctx, id); err != nil {
		return fmt.Errorf("failed to delete internal rate: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionDeleteRate, strconv.Itoa(int(id)), "", map[string]interface{}{
		"rate_type": "internal",
	})
	return nil
}

func (s *rateService) ListInternalRates(ctx context.Context, page, limit int) ([]model.RateHistoryInternalVehicle, int64, error) {
	return s.rateRepo.ListInternalRates(ctx, normalizePage(page), normalizeLimit(limit))
}

// --- Vendor rates ---

func (s *rateService) buildVendorRate(rate *model.RateHistoryVendor, req VendorRateRequest) error {
	rateValue, err := parseAmount("rate_value", req.RateValue)
	if err != nil {
		return err
	}
	effectiveDate, err := parseDate(req.EffectiveDate)
	if err != nil {
		return err
	}
	if req.WaterType != model.WaterTypeDrinking && req.WaterType != model.WaterTypeNormal {
		return errors.New("invalid water_type")
	}
	if req.CostType == model.CostTypePerLoad && (req.VehicleCapacity == nil || *req.VehicleCapacity <= 0) {
		return errors.New("vehicle_capacity is required for Per_Load rates")
	}

	rate.SourceID = req.SourceID
	rate.WaterType = req.WaterType
	rate.CostType = req.CostType
	rate.RateValue = rateValue
	rate.VehicleCapacity = req.VehicleCapacity
	rate.EffectiveDate = effectiveDate

	switch req.CostType {
	case model.CostTypePerLiter:
		rate.CalculatedCostPerLiter = decimal.NewNullDecimal(rateValue)
		rate.CalculatedCostPerKL = decimal.NewNullDecimal(rateValue.Mul(decimal.NewFromInt(1000)))
	case model.CostTypePerLoad:
		perLiter, perKL := engine.PerLoadUnitCosts(rateValue, *req.VehicleCapacity)
		rate.CalculatedCostPerLiter = decimal.NewNullDecimal(perLiter)
		rate.CalculatedCostPerKL = decimal.NewNullDecimal(perKL)
	}
	return nil
}

func (s *rateService) CreateVendorRate(ctx context.Context, userID string, req VendorRateRequest) (*model.RateHistoryVendor, error) {
	source, err := s.sourceRepo.FindVendorByID(ctx, req.SourceID)
	if err != nil {
		return nil, errors.New("vendor source not found")
	}

	rate := &model.RateHistoryVendor{}
	if err := s.buildVendorRate(rate, req); err != nil {
		return nil, err
	}
	if err := s.rateRepo.CreateVendorRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create vendor rate: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionCreateRate, strconv.Itoa(int(rate.ID)), source.SourceName, map[string]interface{}{
		"rate_type": "vendor", "water_type": req.WaterType, "cost_type": req.CostType,
		"rate_value": req.RateValue, "effective_date": req.EffectiveDate,
	})
	return rate, nil
}

func (s *rateService) UpdateVendorRate(ctx context.Context, userID string, id uint, req VendorRateRequest) (*model.RateHistoryVendor, error) {
	rate, err := s.rateRepo.FindVendorRateByID(ctx, id)
	if err != nil {
		return nil, errors.New("vendor rate not found")
	}
	if _, err := s.sourceRepo.FindVendorByID(ctx, req.SourceID); err != nil {
		return nil, errors.New("vendor source not found")
	}
	if err := s.buildVendorRate(rate, req); err != nil {
		return nil, err
	}
	if err := s.rateRepo.UpdateVendorRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to update vendor rate: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionUpdateRate, strconv.Itoa(int(rate.ID)), "", map[string]interface{}{
		"rate_type": "vendor", "rate_value": req.RateValue, "effective_date": req.EffectiveDate,
	})
	return rate, nil
}

func (s *rateService) DeleteVendorRate(ctx context.Context, userID string, id uint) error {
	if err := s.rateRepo.DeleteVendorRate(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vendor rate: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionDeleteRate, strconv.Itoa(int(id)), "", map[string]interface{}{
		"rate_type": "vendor",
	})
	return nil
}

func (s *rateService) ListVendorRates(ctx context.Context, page, limit int) ([]model.RateHistoryVendor, int64, error) {
	return s.rateRepo.ListVendorRates(ctx, normalizePage(page), normalizeLimit(limit))
}

// --- Pipeline rates ---

func (s *rateService) CreatePipelineRate(ctx context.Context, userID string, req PipelineRateRequest) (*model.RateHistoryPipeline, error) {
	costPerLiter, err := parseAmount("cost_per_liter", req.CostPerLiter)
	if err != nil {
		return nil, err
	}
	effectiveDate, err := parseDate(req.EffectiveDate)
	if err != nil {
		return nil, err
	}
	source, err := s.sourceRepo.FindByID(ctx, req.SourceID)
	if err != nil {
		return nil, errors.New("source not found")
	}
	if source.SourceType != model.SourceTypePipeline {
		return nil, errors.New("pipeline rates require a Pipeline source")
	}

	rate := &model.RateHistoryPipeline{
		SourceID:      req.SourceID,
		CostPerLiter:  costPerLiter,
		EffectiveDate: effectiveDate,
	}
	if err := s.rateRepo.CreatePipelineRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create pipeline rate: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionCreateRate, strconv.Itoa(int(rate.ID)), source.SourceName, map[string]interface{}{
		"rate_type": "pipeline", "cost_per_liter": req.CostPerLiter, "effective_date": req.EffectiveDate,
	})
	return rate, nil
}

func (s *rateService) UpdatePipelineRate(ctx context.Context, userID string, id uint, req PipelineRateRequest) (*model.RateHistoryPipeline, error) {
	rate, err := s.rateRepo.FindPipelineRateByID(ctx, id)
	if err != nil {
		return nil, errors.New("pipeline rate not found")
	}
	costPerLiter, err := parseAmount("cost_per_liter", req.CostPerLiter)
	if err != nil {
		return nil, err
	}
	effectiveDate, err := parseDate(req.EffectiveDate)
	if err != nil {
		return nil, err
	}

	rate.SourceID = req.SourceID
	rate.CostPerLiter = costPerLiter
	rate.EffectiveDate = effectiveDate
	if err := s.rateRepo.UpdatePipelineRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to update pipeline rate: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionUpdateRate, strconv.Itoa(int(rate.ID)), "", map[string]interface{}{
		"rate_type": "pipeline", "cost_per_liter": req.CostPerLiter, "effective_date": req.EffectiveDate,
	})
	return rate, nil
}

func (s *rateService) DeletePipelineRate(ctx context.Context, userID string, id uint) error {
	if err := s.rateRepo.DeletePipelineRate(ctx, id); err != nil {
		return fmt.Errorf("failed to delete pipeline rate: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionDeleteRate, strconv.Itoa(int(id)), "", map[string]interface{}{
		"rate_type": "pipeline",
	})
	return nil
}

func (s *rateService) ListPipelineRates(ctx context.Context, page, limit int) ([]model.RateHistoryPipeline, int64, error) {
	return s.rateRepo.ListPipelineRates(ctx, normalizePage(page), normalizeLimit(limit))
}

// --- General water rates ---

func (s *rateService) CreateGeneralRate(ctx context.Context, userID string, req GeneralRateRequest) (*model.GeneralWaterRate, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	normalRate, err := parseAmount("normal_water_rate", req.NormalWaterRate)
	if err != nil {
		return nil, err
	}
	drinkingRate, err := parseAmount("drinking_water_rate", req.DrinkingWaterRate)
	if err != nil {
		return nil, err
	}

	effectiveDate := date
	if req.EffectiveDate != "" {
		effectiveDate, err = parseDate(req.EffectiveDate)
		if err != nil {
			return nil, err
		}
	}

	rate := &model.GeneralWaterRate{
		Date:              date,
		NormalWaterRate:   normalRate,
		DrinkingWaterRate: drinkingRate,
		EffectiveDate:     effectiveDate,
	}
	if userID != "" {
		if parsed, parseErr := uuid.Parse(userID); parseErr == nil {
			rate.CreatedByID = &parsed
		}
	}

	if err := s.rateRepo.CreateGeneralRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to create general water rate: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionCreateRate, strconv.Itoa(int(rate.ID)), "general water rate", map[string]interface{}{
		"rate_type": "general", "normal_water_rate": req.NormalWaterRate,
		"drinking_water_rate": req.DrinkingWaterRate, "effective_date": rate.EffectiveDate.Format(dateLayout),
	})
	return rate, nil
}

func (s *rateService) DeleteGeneralRate(ctx context.Context, userID string, id uint) error {
	if err := s.rateRepo.DeleteGeneralRate(ctx, id); err != nil {
		return fmt.Errorf("failed to delete general water rate: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionDeleteRate, strconv.Itoa(int(id)), "general water rate", map[string]interface{}{
		"rate_type": "general",
	})
	return nil
}

func (s *rateService) ListGeneralRates(ctx context.Context) ([]model.GeneralWaterRate, error) {
	return s.rateRepo.ListGeneralRates(ctx)
}

// --- shared helpers ---

func normalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}
