package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"watertracker/internal/engine"
	"watertracker/internal/model"
	"watertracker/internal/repository"
	"watertracker/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type EntryRequest struct {
	EntryDate            string `json:"entry_date" binding:"required"`
	SourceID             uint   `json:"source_id" binding:"required"`
	LoadingLocationID    *uint  `json:"loading_location_id"`
	UnloadingLocationID  *uint  `json:"unloading_location_id"`
	Shift                string `json:"shift" binding:"omitempty,oneof=Morning Evening Night"`
	WaterType            string `json:"water_type"`
	VehicleID            *uint  `json:"vehicle_id"`
	LoadCount            *int   `json:"load_count"`
	MeterReadingCurrent  *int   `json:"meter_reading_current"`
	MeterReadingPrevious *int   `json:"meter_reading_previous"`
	ManualCapacityLiters *int   `json:"manual_capacity_liters"`
	ManualOverride       bool   `json:"manual_override"`
	QuantityLiters       *int   `json:"quantity_liters"`
	Comments             string `json:"comments" binding:"max=300"`
}

type EntryListQuery struct {
	VehicleID           *uint
	LocationID          *uint
	LoadingLocationID   *uint
	UnloadingLocationID *uint
	SourceID            *uint
	StartDate           string
	EndDate             string
	WaterType           string
	Ordering            string
}

type LastPipelineReadingResponse struct {
	LastReading *int    `json:"last_reading"`
	EntryDate   *string `json:"entry_date"`
	ActiveRate  *string `json:"active_rate"`
}

// EntryService is business logic for water procurement entries. All pricing
// goes through CostService; pipeline meter deltas are normalized from KL to
// liters here, exactly once.
type EntryService interface {
	Create(ctx context.Context, userID string, req EntryRequest) (*model.WaterEntry, error)
	Update(ctx context.Context, userID string, id uint, req EntryRequest) (*model.WaterEntry, error)
	Delete(ctx context.Context, id uint) error
	BulkDelete(ctx context.Context, userID string, ids []uint) error
	GetByID(ctx context.Context, id uint) (*model.WaterEntry, error)
	List(ctx context.Context, query EntryListQuery, page, limit int) ([]model.WaterEntry, int64, error)
	Export(ctx context.Context, query EntryListQuery) ([]model.WaterEntry, error)
	LastPipelineReading(ctx context.Context, sourceID uint, date string) (*LastPipelineReadingResponse, error)
}

type entryService struct {
	entryRepo   repository.EntryRepository
	sourceRepo  repository.SourceRepository
	vehicleRepo repository.VehicleRepository
	rateRepo    repository.RateRepository
	costService CostService
	audit       AuditService
	hub         *websocket.Hub
}

func NewEntryService(
	entryRepo repository.EntryRepository,
	sourceRepo repository.SourceRepository,
	vehicleRepo repository.VehicleRepository,
	rateRepo repository.RateRepository,
	costService CostService,
	audit AuditService,
	hub *websocket.Hub,
) EntryService {
	return &entryService{
		entryRepo:   entryRepo,
		sourceRepo:  sourceRepo,
		vehicleRepo: vehicleRepo,
		rateRepo:    rateRepo,
		costService: costService,
		audit:       audit,
		hub:         hub,
	}
}

func (s *entryService) Create(ctx context.Context, userID string, req EntryRequest) (*model.WaterEntry, error) {
	entry := &model.WaterEntry{}
	if err := s.populate(ctx, entry, req); err != nil {
		return nil, err
	}
	if userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			entry.CreatedByID = &parsed
		}
	}

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	created, err := s.entryRepo.FindByID(ctx, entry.ID)
	if err != nil {
		return entry, nil
	}
	s.hub.Notify("entry_created", created)
	return created, nil
}

func (s *entryService) Update(ctx context.Context, userID string, id uint, req EntryRequest) (*model.WaterEntry, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("entry not found")
	}
	if err := s.populate(ctx, entry, req); err != nil {
		return nil, err
	}

	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	updated, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return entry, nil
	}
	s.hub.Notify("entry_updated", updated)
	return updated, nil
}

func (s *entryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.entryRepo.FindByID(ctx, id); err != nil {
		return errors.New("entry not found")
	}
	if err := s.entryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	s.hub.Notify("entry_deleted", map[string]uint{"id": id})
	return nil
}

func (s *entryService) BulkDelete(ctx context.Context, userID string, ids []uint) error {
	if err := s.entryRepo.BulkDelete(ctx, ids); err != nil {
		return fmt.Errorf("failed to bulk delete entries: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionBulkDeleteRows, "", "water entries", map[string]interface{}{
		"entity": "water_entry", "ids": ids,
	})
	s.hub.Notify("entry_deleted", map[string][]uint{"ids": ids})
	return nil
}

func (s *entryService) GetByID(ctx context.Context, id uint) (*model.WaterEntry, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("entry not found")
	}
	return entry, nil
}

func (s *entryService) List(ctx context.Context, query EntryListQuery, page, limit int) ([]model.WaterEntry, int64, error) {
	filter, err := s.buildFilter(query)
	if err != nil {
		return nil, 0, err
	}
	return s.entryRepo.List(ctx, filter, normalizePage(page), normalizeLimit(limit))
}

func (s *entryService) Export(ctx context.Context, query EntryListQuery) ([]model.WaterEntry, error) {
	filter, err := s.buildFilter(query)
	if err != nil {
		return nil, err
	}
	return s.entryRepo.ListAll(ctx, filter)
}

func (s *entryService) LastPipelineReading(ctx context.Context, sourceID uint, date string) (*LastPipelineReadingResponse, error) {
	source, err := s.sourceRepo.FindByID(ctx, sourceID)
	if err != nil {
		return nil, errors.New("source not found")
	}
	if source.SourceType != model.SourceTypePipeline {
		return nil, errors.New("last pipeline reading requires a Pipeline source")
	}

	target := time.Now()
	var onOrBefore *time.Time
	if date != "" {
		parsed, parseErr := parseDate(date)
		if parseErr != nil {
			return nil, parseErr
		}
		target = parsed
		onOrBefore = &parsed
	}

	resp := &LastPipelineReadingResponse{}
	if entry, readErr := s.entryRepo.LastPipelineReading(ctx, sourceID, onOrBefore); readErr == nil {
		resp.LastReading = entry.MeterReadingCurrent
		d := entry.EntryDate.Format(dateLayout)
		resp.EntryDate = &d
	}

	candidates, err := s.rateRepo.PipelineRateCandidates(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if rate, ok := engine.Resolve(candidates, target); ok {
		r := rate.CostPerLiter.String()
		resp.ActiveRate = &r
	}
	return resp, nil
}

// populate fills entry from req: quantity normalization, pricing, snapshots.
func (s *entryService) populate(ctx context.Context, entry *model.WaterEntry, req EntryRequest) error {
	entryDate, err := parseDate(req.EntryDate)
	if err != nil {
		return err
	}
	source, err := s.sourceRepo.FindByID(ctx, req.SourceID)
	if err != nil {
		return errors.New("source not found")
	}

	loadCount := 1
	if req.LoadCount != nil && *req.LoadCount > 0 {
		loadCount = *req.LoadCount
	}

	quantity, err := s.resolveEntryQuantity(ctx, source, &req, loadCount)
	if err != nil {
		return err
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return errors.New("quantity must be greater than 0")
	}

	params := PriceParams{
		Source:         source,
		Date:           entryDate,
		WaterType:      req.WaterType,
		LoadCount:      loadCount,
		ManualOverride: req.ManualOverride,
		QuantityLiters: quantity,
	}
	if req.VehicleID != nil {
		params.VehicleID = *req.VehicleID
	}
	if req.LoadingLocationID != nil {
		params.LoadingLocationID = *req.LoadingLocationID
	}

	priced, err := s.costService.Price(ctx, params)
	if err != nil {
		return err
	}

	sourceID := req.SourceID
	entry.EntryDate = entryDate
	entry.SourceID = &sourceID
	entry.LoadingLocationID = req.LoadingLocationID
	entry.UnloadingLocationID = req.UnloadingLocationID
	entry.Shift = req.Shift
	entry.WaterType = req.WaterType
	entry.VehicleID = req.VehicleID
	entry.LoadCount = req.LoadCount
	entry.MeterReadingCurrent = req.MeterReadingCurrent
	entry.MeterReadingPrevious = req.MeterReadingPrevious
	entry.ManualCapacityLiters = req.ManualCapacityLiters
	entry.TotalQuantityLiters = quantity
	entry.TotalCost = priced.TotalCost
	entry.SnapshotCostPerLiter = priced.CostPerLiter
	entry.SnapshotCostPerKL = priced.CostPerKL
	entry.Comments = req.Comments

	if priced.CostPerLiter.Valid {
		entry.SnapshotPaisePerLiter = decimal.NewNullDecimal(
			priced.CostPerLiter.Decimal.Mul(decimal.NewFromInt(100)).Round(2))
	} else {
		entry.SnapshotPaisePerLiter = decimal.NullDecimal{}
	}
	return nil
}

// resolveEntryQuantity yields liters for the entry. Pipeline sources convert
// the KL meter delta here; everyone else derives from loads × capacity unless
// an explicit quantity was supplied.
func (s *entryService) resolveEntryQuantity(ctx context.Context, source *model.MasterSource, req *EntryRequest, loadCount int) (decimal.Decimal, error) {
	if source.SourceType == model.SourceTypePipeline {
		if req.MeterReadingCurrent == nil {
			return decimal.Decimal{}, errors.New("pipeline entries require meter_reading_current")
		}
		if req.MeterReadingPrevious == nil {
			// Fall back to the stored last reading, default 0 for the first period
			previous := 0
			if last, err := s.entryRepo.LastPipelineReading(ctx, source.ID, nil); err == nil && last.MeterReadingCurrent != nil {
				previous = *last.MeterReadingCurrent
			}
			req.MeterReadingPrevious = &previous
		}
		liters, err := engine.ComputeVolume(*req.MeterReadingCurrent, *req.MeterReadingPrevious, false, 0)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return decimal.NewFromInt(int64(liters)), nil
	}

	if req.ManualOverride && req.QuantityLiters != nil && *req.QuantityLiters > 0 {
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
		if req.QuantityLiters != nil && *req.QuantityLiters > 0 {
			return decimal.NewFromInt(int64(*req.QuantityLiters)), nil
		}
		return decimal.Decimal{}, errors.New("cannot derive quantity: no vehicle capacity or manual quantity supplied")
	}
	return decimal.NewFromInt(int64(liters)), nil
}

func (s *entryService) buildFilter(query EntryListQuery) (repository.EntryFilter, error) {
	filter := repository.EntryFilter{
		VehicleID:           query.VehicleID,
		LocationID:          query.LocationID,
		LoadingLocationID:   query.LoadingLocationID,
		UnloadingLocationID: query.UnloadingLocationID,
		SourceID:            query.SourceID,
		WaterType:           query.WaterType,
		Ordering:            query.Ordering,
	}
	if query.StartDate != "" {
		start, err := parseDate(query.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := parseDate(query.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &end
	}
	return filter, nil
}
