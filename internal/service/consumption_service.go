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

type ConsumptionCategoryRequest struct {
	Name            string `json:"name" binding:"required"`
	IsActive        *bool  `json:"is_active"`
	StudentCount    *int   `json:"student_count"`
	IsExcluded      *bool  `json:"is_excluded"`
	ExcludeValue    *int   `json:"exclude_value"`
	SecondCount     *int   `json:"second_count"`
	HasStudentCount *bool  `json:"has_student_count"`
}

type ConsumptionLocationRequest struct {
	LocationName    string `json:"location_name" binding:"required"`
	ConsumptionType string `json:"consumption_type" binding:"required,oneof=Normal Drinking"`
	CategoryID      *uint  `json:"category_id"`
	IsActive        *bool  `json:"is_active"`
	SortOrder       *int   `json:"sort_order"`
}

type ConsumptionEntryRequest struct {
	Date            string `json:"date" binding:"required"`
	LocationID      uint   `json:"location_id" binding:"required"`
	CurrentReading  *int   `json:"current_reading"`
	PreviousReading *int   `json:"previous_reading"`
	Comments        string `json:"comments" binding:"max=300"`
}

type ConsumptionBulkDataRow struct {
	Location        model.ConsumptionLocation `json:"location"`
	PreviousReading int                       `json:"previous_reading"`
	ExistingEntry   *model.ConsumptionEntry   `json:"existing_entry"`
}

type ConsumptionListQuery struct {
	LocationID      *uint
	StartDate       string
	EndDate         string
	ConsumptionType string
	CategoryID      *uint
	Ordering        string
}

// ConsumptionService is business logic for consumption categories, metered
// consumption locations and their daily entries.
type ConsumptionService interface {
	CreateCategory(ctx context.Context, userID string, req ConsumptionCategoryRequest) (*model.ConsumptionCategory, error)
	UpdateCategory(ctx context.Context, userID string, id uint, req ConsumptionCategoryRequest) (*model.ConsumptionCategory, error)
	DeleteCategory(ctx context.Context, userID string, id uint) error
	ListCategories(ctx context.Context) ([]model.ConsumptionCategory, error)
	BulkDeleteCategories(ctx context.Context, userID string, ids []uint) error

	CreateLocation(ctx context.Context, userID string, req ConsumptionLocationRequest) (*model.ConsumptionLocation, error)
	UpdateLocation(ctx context.Context, userID string, id uint, req ConsumptionLocationRequest) (*model.ConsumptionLocation, error)
	DeleteLocation(ctx context.Context, userID string, id uint) error
	ListLocations(ctx context.Context) ([]model.ConsumptionLocation, error)
	BulkDeleteLocations(ctx context.Context, userID string, ids []uint) error
	ReorderLocations(ctx context.Context, userID string, orders []repository.SortOrderUpdate) error

	CreateEntry(ctx context.Context, userID string, req ConsumptionEntryRequest) (*model.ConsumptionEntry, error)
	UpdateEntry(ctx context.Context, userID string, id uint, req ConsumptionEntryRequest) (*model.ConsumptionEntry, error)
	DeleteEntry(ctx context.Context, id uint) error
	BulkDeleteEntries(ctx context.Context, userID string, ids []uint) error
	ListEntries(ctx context.Context, query ConsumptionListQuery, page, limit int) ([]model.ConsumptionEntry, int64, error)
	BulkData(ctx context.Context, date, consumptionType string) ([]ConsumptionBulkDataRow, error)
	BulkCreate(ctx context.Context, userID string, req BulkReadingRequest) (*BulkReadingResult, error)
	LastReading(ctx context.Context, locationID uint, date string) (*LastReadingResponse, error)
}

type consumptionService struct {
	repo  repository.ConsumptionRepository
	audit AuditService
}

func NewConsumptionService(repo repository.ConsumptionRepository, audit AuditService) ConsumptionService {
	return &consumptionService{repo: repo, audit: audit}
}

// --- Categories ---

func (s *consumptionService) CreateCategory(ctx context.Context, userID string, req ConsumptionCategoryRequest) (*model.ConsumptionCategory, error) {
	cat := &model.ConsumptionCategory{
		Name:            req.Name,
		IsActive:        true,
		HasStudentCount: true,
	}
	applyCategoryRequest(cat, req)

	if err := s.repo.CreateCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to create consumption category: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionCreateMaster, strconv.Itoa(int(cat.ID)), cat.Name, map[string]interface{}{
		"entity": "consumption_category",
	})
	return cat, nil
}

func (s *consumptionService) UpdateCategory(ctx context.Context, userID string, id uint, req ConsumptionCategoryRequest) (*model.ConsumptionCategory, error) {
	cat, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, errors.New("consumption category not found")
	}

	cat.Name = req.Name
	applyCategoryRequest(cat, req)

	if err := s.repo.UpdateCategory(ctx, cat); err != nil {
		return nil, fmt.Errorf("failed to update consumption category: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionUpdateMaster, strconv.Itoa(int(cat.ID)), cat.Name, map[string]interface{}{
		"entity": "consumption_category",
	})
	return cat, nil
}

func applyCategoryRequest(cat *model.ConsumptionCategory, req ConsumptionCategoryRequest) {
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}
	if req.StudentCount != nil {
		cat.StudentCount = *req.StudentCount
	}
	if req.IsExcluded != nil {
		cat.IsExcluded = *req.IsExcluded
	}
	if req.ExcludeValue != nil {
		cat.ExcludeValue = *req.ExcludeValue
	}
	if req.SecondCount != nil {
		cat.SecondCount = *req.SecondCount
	}
	if req.HasStudentCount != nil {
		cat.HasStudentCount = *req.HasStudentCount
	}
}

func (s *consumptionService) DeleteCategory(ctx context.Context, userID string, id uint) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete consumption category: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionDeleteMaster, strconv.Itoa(int(id)), "", map[string]interface{}{
		"entity": "consumption_category",
	})
	return nil
}

func (s *consumptionService) ListCategories(ctx context.Context) ([]model.ConsumptionCategory, error) {
	return s.repo.ListCategories(ctx)
}

func (s *consumptionService) BulkDeleteCategories(ctx context.Context, userID string, ids []uint) error {
	if err := s.repo.BulkDeleteCategories(ctx, ids); err != nil {
		return fmt.Errorf("failed to bulk delete consumption categories: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionBulkDeleteRows, "", "consumption categories", map[string]interface{}{
		"entity": "consumption_category", "ids": ids,
	})
	return nil
}

// --- Locations ---

func (s *consumptionService) CreateLocation(ctx context.Context, userID string, req ConsumptionLocationRequest) (*model.ConsumptionLocation, error) {
	loc := &model.ConsumptionLocation{
		LocationName:    req.LocationName,
		ConsumptionType: req.ConsumptionType,
		CategoryID:      req.CategoryID,
		IsActive:        true,
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		loc.SortOrder = *req.SortOrder
	}

	if err := s.repo.CreateLocation(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to create consumption location: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionCreateMaster, strconv.Itoa(int(loc.ID)), loc.LocationName, map[string]interface{}{
		"entity": "consumption_location", "consumption_type": loc.ConsumptionType,
	})
	return loc, nil
}

func (s *consumptionService) UpdateLocation(ctx context.Context, userID string, id uint, req ConsumptionLocationRequest) (*model.ConsumptionLocation, error) {
	loc, err := s.repo.FindLocationByID(ctx, id)
	if err != nil {
		return nil, errors.New("consumption location not found")
	}

	loc.LocationName = req.LocationName
	loc.ConsumptionType = req.ConsumptionType
	loc.CategoryID = req.CategoryID
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		loc.SortOrder = *req.SortOrder
	}

	if err := s.repo.UpdateLocation(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to update consumption location: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionUpdateMaster, strconv.Itoa(int(loc.ID)), loc.LocationName, map[string]interface{}{
		"entity": "consumption_location",
	})
	return loc, nil
}

func (s *consumptionService) DeleteLocation(ctx context.Context, userID string, id uint) error {
	loc, err := s.repo.FindLocationByID(ctx, id)
	if err != nil {
		return errors.New("consumption location not found")
	}
	if err := s.repo.DeleteLocation(ctx, id); err != nil {
		return fmt.Errorf("failed to delete consumption location: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionDeleteMaster, strconv.Itoa(int(id)), loc.LocationName, map[string]interface{}{
		"entity": "consumption_location",
	})
	return nil
}

func (s *consumptionService) ListLocations(ctx context.Context) ([]model.ConsumptionLocation, error) {
	return s.repo.ListLocations(ctx)
}

func (s *consumptionService) BulkDeleteLocations(ctx context.Context, userID string, ids []uint) error {
	if err := s.repo.BulkDeleteLocations(ctx, ids); err != nil {
		return fmt.Errorf("failed to bulk delete consumption locations: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionBulkDeleteRows, "", "consumption locations", map[string]interface{}{
		"entity": "consumption_location", "ids": ids,
	})
	return nil
}

func (s *consumptionService) ReorderLocations(ctx context.Context, userID string, orders []repository.SortOrderUpdate) error {
	if err := s.repo.ReorderLocations(ctx, orders); err != nil {
		return fmt.Errorf("failed to reorder consumption locations: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionReorderMaster, "", "consumption locations", map[string]interface{}{
		"entity": "consumption_location", "count": len(orders),
	})
	return nil
}

// --- Entries ---

func (s *consumptionService) CreateEntry(ctx context.Context, userID string, req ConsumptionEntryRequest) (*model.ConsumptionEntry, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindLocationByID(ctx, req.LocationID); err != nil {
		return nil, errors.New("consumption location not found")
	}
	if req.CurrentReading == nil {
		return nil, errors.New("current_reading is required")
	}

	previous := 0
	if req.PreviousReading != nil {
		previous = *req.PreviousReading
	} else if last, lookupErr := s.repo.LastReadingBefore(ctx, req.LocationID, date); lookupErr == nil && last != nil {
		previous = last.CurrentReading
	}

	liters, err := engine.ComputeVolume(*req.CurrentReading, previous, false, 0)
	if err != nil {
		return nil, err
	}

	entry := &model.ConsumptionEntry{
		Date:              date,
		LocationID:        req.LocationID,
		CurrentReading:    *req.CurrentReading,
		PreviousReading:   previous,
		ConsumptionLiters: liters,
		Comments:          req.Comments,
	}
	if userID != "" {
		if parsed, parseErr := uuid.Parse(userID); parseErr == nil {
			entry.CreatedByID = &parsed
		}
	}

	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create consumption entry: %w", err)
	}
	return s.repo.FindEntryByID(ctx, entry.ID)
}

func (s *consumptionService) UpdateEntry(ctx context.Context, userID string, id uint, req ConsumptionEntryRequest) (*model.ConsumptionEntry, error) {
	entry, err := s.repo.FindEntryByID(ctx, id)
	if err != nil {
		return nil, errors.New("consumption entry not found")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindLocationByID(ctx, req.LocationID); err != nil {
		return nil, errors.New("consumption location not found")
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

	liters, err := engine.ComputeVolume(current, previous, false, 0)
	if err != nil {
		return nil, err
	}

	entry.Date = date
	entry.LocationID = req.LocationID
	entry.CurrentReading = current
	entry.PreviousReading = previous
	entry.ConsumptionLiters = liters
	entry.Comments = req.Comments

	if err := s.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update consumption entry: %w", err)
	}
	return s.repo.FindEntryByID(ctx, id)
}

func (s *consumptionService) DeleteEntry(ctx context.Context, id uint) error {
	if _, err := s.repo.FindEntryByID(ctx, id); err != nil {
		return errors.New("consumption entry not found")
	}
	return s.repo.DeleteEntry(ctx, id)
}

func (s *consumptionService) BulkDeleteEntries(ctx context.Context, userID string, ids []uint) error {
	if err := s.repo.BulkDeleteEntries(ctx, ids); err != nil {
		return fmt.Errorf("failed to bulk delete consumption entries: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionBulkDeleteRows, "", "consumption entries", map[string]interface{}{
		"entity": "consumption_entry", "ids": ids,
	})
	return nil
}

func (s *consumptionService) ListEntries(ctx context.Context, query ConsumptionListQuery, page, limit int) ([]model.ConsumptionEntry, int64, error) {
	filter := repository.ConsumptionFilter{
		ReadingFilter:   repository.ReadingFilter{LocationID: query.LocationID, Ordering: query.Ordering},
		ConsumptionType: query.ConsumptionType,
		CategoryID:      query.CategoryID,
	}
	if query.StartDate != "" {
		start, err := parseDate(query.StartDate)
		if err != nil {
			return nil, 0, err
		}
		filter.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := parseDate(query.EndDate)
		if err != nil {
			return nil, 0, err
		}
		filter.EndDate = &end
	}
	return s.repo.ListEntries(ctx, filter, normalizePage(page), normalizeLimit(limit))
}

func (s *consumptionService) BulkData(ctx context.Context, dateStr, consumptionType string) ([]ConsumptionBulkDataRow, error) {
	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	locations, err := s.repo.ListActiveLocationsByType(ctx, consumptionType)
	if err != nil {
		return nil, err
	}

	rows := make([]ConsumptionBulkDataRow, 0, len(locations))
	for _, loc := range locations {
		row := ConsumptionBulkDataRow{Location: loc}
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

func (s *consumptionService) BulkCreate(ctx context.Context, userID string, req BulkReadingRequest) (*BulkReadingResult, error) {
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
		if _, lookupErr := s.repo.FindLocationByID(ctx, row.LocationID); lookupErr != nil {
			result.Skipped = append(result.Skipped, SkippedRow{LocationID: row.LocationID, Reason: "location not found"})
			continue
		}
		if row.CurrentReading == nil {
			result.Skipped = append(result.Skipped, SkippedRow{LocationID: row.LocationID, Reason: "blank reading"})
			continue
		}

		previous := 0
		if last, lookupErr := s.repo.LastReadingBefore(ctx, row.LocationID, date); lookupErr == nil && last != nil {
			previous = last.CurrentReading
		}

		liters, volErr := engine.ComputeVolume(*row.CurrentReading, previous, false, 0)
		if volErr != nil {
			result.Skipped = append(result.Skipped, SkippedRow{LocationID: row.LocationID, Reason: volErr.Error()})
			continue
		}

		entry := &model.ConsumptionEntry{
			Date:              date,
			LocationID:        row.LocationID,
			CurrentReading:    *row.CurrentReading,
			PreviousReading:   previous,
			ConsumptionLiters: liters,
			Comments:          row.Comments,
			CreatedByID:       createdBy,
		}
		if upsertErr := s.repo.UpsertEntry(ctx, entry); upsertErr != nil {
			result.Skipped = append(result.Skipped, SkippedRow{LocationID: row.LocationID, Reason: "save failed"})
			continue
		}
		result.Created++
	}
	return result, nil
}

func (s *consumptionService) LastReading(ctx context.Context, locationID uint, dateStr string) (*LastReadingResponse, error) {
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
