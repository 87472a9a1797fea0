package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"watertracker/internal/engine"
	"watertracker/internal/model"
	"watertracker/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type YieldLocationRequest struct {
	LocationName  string `json:"location_name" binding:"required"`
	YieldType     string `json:"yield_type" binding:"required,oneof=Borewell Well"`
	IsManualYield *bool  `json:"is_manual_yield"`
	IsActive      *bool  `json:"is_active"`
	SortOrder     *int   `json:"sort_order"`
}

type YieldEntryRequest struct {
	Date            string `json:"date" binding:"required"`
	LocationID      uint   `json:"location_id" binding:"required"`
	CurrentReading  *int   `json:"current_reading"`
	PreviousReading *int   `json:"previous_reading"`
	YieldLiters     *int   `json:"yield_liters"`
	Comments        string `json:"comments" binding:"max=300"`
}

// BulkReadingRow is one row of a bulk-create payload.
type BulkReadingRow struct {
	LocationID     uint   `json:"location_id" binding:"required"`
	CurrentReading *int   `json:"current_reading"`
	ManualLiters   *int   `json:"manual_liters"`
	Comments       string `json:"comments"`
}

type BulkReadingRequest struct {
	Date    string           `json:"date" binding:"required"`
	Entries []BulkReadingRow `json:"entries" binding:"required,min=1"`
}

// SkippedRow reports one bulk row that failed validation while its siblings
// persisted.
type SkippedRow struct {
	LocationID uint   `json:"location_id"`
	Reason     string `json:"reason"`
}

type BulkReadingResult struct {
	Created int          `json:"created"`
	Skipped []SkippedRow `json:"skipped"`
}

// YieldBulkDataRow is the prefill for one active location on the bulk entry
// screen.
type YieldBulkDataRow struct {
	Location        model.YieldLocation `json:"location"`
	PreviousReading int                 `json:"previous_reading"`
	ExistingEntry   *model.YieldEntry   `json:"existing_entry"`
}

type LastReadingResponse struct {
	LastReading *int    `json:"last_reading"`
	Date        *string `json:"date"`
}

// YieldService is business logic for borewell/well yield locations and their
// daily meter entries.
type YieldService interface {
	CreateLocation(ctx context.Context, userID string, req YieldLocationRequest) (*model.YieldLocation, error)
	UpdateLocation(ctx context.Context, userID string, id uint, req YieldLocationRequest) (*model.YieldLocation, error)
	DeleteLocation(ctx context.Context, userID string, id uint) error
	ListLocations(ctx context.Context) ([]model.YieldLocation, error)
	BulkDeleteLocations(ctx context.Context, userID string, ids []uint) error
	ReorderLocations(ctx context.Context, userID string, orders []repository.SortOrderUpdate) error

	CreateEntry(ctx context.Context, userID string, req YieldEntryRequest) (*model.YieldEntry, error)
	UpdateEntry(ctx context.Context, userID string, id uint, req YieldEntryRequest) (*model.YieldEntry, error)
	DeleteEntry(ctx context.Context, id uint) error
	BulkDeleteEntries(ctx context.Context, userID string, ids []uint) error
	ListEntries(ctx context.Context, locationID *uint, startDate, endDate, ordering string, page, limit int) ([]model.YieldEntry, int64, error)
	BulkData(ctx context.Context, date string) ([]YieldBulkDataRow, error)
	BulkCreate(ctx context.Context, userID string, req BulkReadingRequest) (*BulkReadingResult, error)
	LastReading(ctx context.Context, locationID uint, date string) (*LastReadingResponse, error)
}

type yieldService struct {
	repo  repository.YieldRepository
	audit AuditService
}

func NewYieldService(repo repository.YieldRepository, audit AuditService) YieldService {
	return &yieldService{repo: repo, audit: audit}
}

// --- Locations ---

func (s *yieldService) CreateLocation(ctx context.Context, userID string, req YieldLocationRequest) (*model.YieldLocation, error) {
	loc := &model.YieldLocation{
		LocationName: req.LocationName,
		YieldType:    req.YieldType,
		IsActive:     true,
	}
	if req.IsManualYield != nil {
		loc.IsManualYield = *req.IsManualYield
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		loc.SortOrder = *req.SortOrder
	}

	if err := s.repo.CreateLocation(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to create yield location: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionCreateMaster, strconv.Itoa(int(loc.ID)), loc.LocationName, map[string]interface{}{
		"entity": "yield_location", "yield_type": loc.YieldType,
	})
	return loc, nil
}

func (s *yieldService) UpdateLocation(ctx context.Context, userID string, id uint, req YieldLocationRequest) (*model.YieldLocation, error) {
	loc, err := s.repo.FindLocationByID(ctx, id)
	if err != nil {
		return nil, errors.New("yield location not found")
	}

	loc.LocationName = req.LocationName
	loc.YieldType = req.YieldType
	if req.IsManualYield != nil {
		loc.IsManualYield = *req.IsManualYield
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		loc.SortOrder = *req.SortOrder
	}

	if err := s.repo.UpdateLocation(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to update yield location: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionUpdateMaster, strconv.Itoa(int(loc.ID)), loc.LocationName, map[string]interface{}{
		"entity": "yield_location",
	})
	return loc, nil
}

func (s *yieldService) DeleteLocation(ctx context.Context, userID string, id uint) error {
	loc, err := s.repo.FindLocationByID(ctx, id)
	if err != nil {
		return errors.New("yield location not found")
	}
	if err := s.repo.DeleteLocation(ctx, id); err != nil {
		return fmt.Errorf("failed to delete yield location: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionDeleteMaster, strconv.Itoa(int(id)), loc.LocationName, map[string]interface{}{
		"entity": "yield_location",
	})
	return nil
}

func (s *yieldService) ListLocations(ctx context.Context) ([]model.YieldLocation, error) {
	return s.repo.ListLocations(ctx)
}

func (s *yieldService) BulkDeleteLocations(ctx context.Context, userID string, ids []uint) error {
	if err := s.repo.BulkDeleteLocations(ctx, ids); err != nil {
		return fmt.Errorf("failed to bulk delete yield locations: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionBulkDeleteRows, "", "yield locations", map[string]interface{}{
		"entity": "yield_location", "ids": ids,
	})
	return nil
}

func (s *yieldService) ReorderLocations(ctx context.Context, userID string, orders []repository.SortOrderUpdate) error {
	if err := s.repo.ReorderLocations(ctx, orders); err != nil {
		return fmt.Errorf("failed to reorder yield locations: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionReorderMaster, "", "yield locations", map[string]interface{}{
		"entity": "yield_location", "count": len(orders),
	})
	return nil
}

// --- Entries ---

func (s *yieldService) CreateEntry(ctx context.Context, userID string, req YieldEntryRequest) (*model.YieldEntry, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	loc, err := s.repo.FindLocationByID(ctx, req.LocationID)
	if err != nil {
		return nil, errors.New("yield location not found")
	}

	previous := 0
	if req.PreviousReading != nil {
		previous = *req.PreviousReading
	} else if last, lookupErr := s.repo.LastReadingBefore(ctx, req.LocationID, date); lookupErr == nil && last != nil {
		previous = last.CurrentReading
	}

	current := 0
	if req.CurrentReading != nil {
		current = *req.CurrentReading
	} else if !loc.IsManualYield {
		return nil, errors.New("current_reading is required for metered locations")
	}

	manualLiters := 0
	if req.YieldLiters != nil {
		manualLiters = *req.YieldLiters
	}

	liters, err := engine.ComputeVolume(current, previous, loc.IsManualYield, manualLiters)
	if err != nil {
		return nil, err
	}

	entry := &model.YieldEntry{
		Date:            date,
		LocationID:      req.LocationID,
		CurrentReading:  current,
		PreviousReading: previous,
		YieldLiters:     liters,
		Comments:        req.Comments,
	}
	if userID != "" {
		if parsed, parseErr := uuid.Parse(userID); parseErr == nil {
			entry.CreatedByID = &parsed
		}
	}

	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create yield entry: %w", err)
	}
	return s.repo.FindEntryByID(ctx, entry.ID)
}

func (s *yieldService) UpdateEntry(ctx context.Context, userID string, id uint, req YieldEntryRequest) (*model.YieldEntry, error) {
	entry, err := s.repo.FindEntryByID(ctx, id)
	if err != nil {
		return nil, errors.New("yield entry not found")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	loc, err := s.repo.FindLocationByID(ctx, req.LocationID)
	if err != nil {
		return nil, errors.New("yield location not found")
	}

	previous := 0
	if req.PreviousReading != nil {
		previous = *req.PreviousReading
	} else if last, lookupErr := s.repo.LastReadingOnOrBefore(ctx, req.LocationID, date, id); lookupErr == nil && last != nil {
		previous = last.CurrentReading
	}

	current := entry.CurrentReading
	if req.CurrentReading != nil {
		current = *req.CurrentReading
	}

	manualLiters := entry.YieldLiters
	if req.YieldLiters != nil {
		manualLiters = *req.YieldLiters
	}

	liters, err := engine.ComputeVolume(current, previous, loc.IsManualYield, manualLiters)
	if err != nil {
		return nil, err
	}

	entry.Date = date
	entry.LocationID = req.LocationID
	entry.CurrentReading = current
	entry.PreviousReading = previous
	entry.YieldLiters = liters
	entry.Comments = req.Comments

	if err := s.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update yield entry: %w", err)
	}
	return s.repo.FindEntryByID(ctx, id)
}

func (s *yieldService) DeleteEntry(ctx context.Context, id uint) error {
	if _, err := s.repo.FindEntryByID(ctx, id); err != nil {
		return errors.New("yield entry not found")
	}
	return s.repo.DeleteEntry(ctx, id)
}

func (s *yieldService) BulkDeleteEntries(ctx context.Context, userID string, ids []uint) error {
	if err := s.repo.BulkDeleteEntries(ctx, ids); err != nil {
		return fmt.Errorf("failed to bulk delete yield entries: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionBulkDeleteRows, "", "yield entries", map[string]interface{}{
		"entity": "yield_entry", "ids": ids,
	})
	return nil
}

func (s *yieldService) ListEntries(ctx context.Context, locationID *uint, startDate, endDate, ordering string, page, limit int) ([]model.YieldEntry, int64, error) {
	filter := repository.ReadingFilter{LocationID: locationID, Ordering: ordering}
	if startDate != "" {
		start, err := parseDate(startDate)
		if err != nil {
			return nil, 0, err
		}
		filter.StartDate = &start
	}
	if endDate != "" {
		end, err := parseDate(endDate)
		if err != nil {
			return nil, 0, err
		}
		filter.EndDate = &end
	}
	return s.repo.ListEntries(ctx, filter, normalizePage(page), normalizeLimit(limit))
}

func (s *yieldService) BulkData(ctx context.Context, dateStr string) ([]YieldBulkDataRow, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	locations, err := s.repo.ListActiveLocations(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]YieldBulkDataRow, 0, len(locations))
	for _, loc := range locations {
		row := YieldBulkDataRow{Location: loc}
		if last, lookupErr := s.repo.LastReadingBefore(ctx, loc.ID, date); lookupErr == nil && last != nil {
			row.PreviousReading = last.CurrentReading
		}
		if existing, lookupErr := s.repo.FindEntryByLocationAndDate(ctx, loc.ID, date); lookupErr == nil {
			row.ExistingEntry = existing
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *yieldService) BulkCreate(ctx context.Context, userID string, req BulkReadingRequest) (*BulkReadingResult, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	var createdBy *uuid.UUID
	if userID != "" {
		if parsed, parseErr := uuid.Parse(userID); parseErr == nil {
			createdBy = &parsed
		}
	}

	result := &BulkReadingResult{Skipped: []SkippedRow{}}
	for _, row := range req.Entries {
		loc, lookupErr := s.repo.FindLocationByID(ctx, row.LocationID)
		if lookupErr != nil {
			result.Skipped = append(result.Skipped, SkippedRow{LocationID: row.LocationID, Reason: "location not found"})
			continue
		}

		if !loc.IsManualYield && row.CurrentReading == nil {
			result.Skipped = append(result.Skipped, SkippedRow{LocationID: row.LocationID, Reason: "blank reading"})
			continue
		}
		if loc.IsManualYield && row.ManualLiters == nil {
			result.Skipped = append(result.Skipped, SkippedRow{LocationID: row.LocationID, Reason: "blank manual yield"})
			continue
		}

		previous := 0
		if last, lookupErr := s.repo.LastReadingBefore(ctx, loc.ID, date); lookupErr == nil && last != nil {
			previous = last.CurrentReading
		}

		current := 0
		if row.CurrentReading != nil {
			current = *row.CurrentReading
		}
		manualLiters := 0
		if row.ManualLiters != nil {
			manualLiters = *row.ManualLiters
		}

		liters, volErr := engine.ComputeVolume(current, previous, loc.IsManualYield, manualLiters)
		if volErr != nil {
			result.Skipped = append(result.Skipped, SkippedRow{LocationID: row.LocationID, Reason: volErr.Error()})
			continue
		}

		entry := &model.YieldEntry{
			Date:            date,
			LocationID:      loc.ID,
			CurrentReading:  current,
			PreviousReading: previous,
			YieldLiters:     liters,
			Comments:        row.Comments,
			CreatedByID:     createdBy,
		}
		if upsertErr := s.repo.UpsertEntry(ctx, entry); upsertErr != nil {
			result.Skipped = append(result.Skipped, SkippedRow{LocationID: row.LocationID, Reason: "save failed"})
			continue
		}
		result.Created++
	}
	return result, nil
}

func (s *yieldService) LastReading(ctx context.Context, locationID uint, dateStr string) (*LastReadingResponse, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}
	resp := &LastReadingResponse{}
	last, err := s.repo.LastReadingOnOrBefore(ctx, locationID, date, 0)
	if err != nil {
		return nil, err
	}
	if last != nil {
		resp.LastReading = &last.CurrentReading
		d := last.Date.Format(dateLayout)
		resp.Date = &d
	}
	return resp, nil
}
