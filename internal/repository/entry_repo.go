package repository

import (
	"context"
	"strings"
	"time"

	"watertracker/internal/model"

	"gorm.io/gorm"
)

// EntryFilter narrows water entry listings. Nil/zero fields are skipped.
// WaterType understands the pseudo-type "Corporation" (pipeline sources) and
// "All" (no filter), matching what the frontend sends.
type EntryFilter struct {
	VehicleID           *uint
	LocationID          *uint // matches loading OR unloading
	LoadingLocationID   *uint
	UnloadingLocationID *uint
	SourceID            *uint
	StartDate           *time.Time
	EndDate             *time.Time
	WaterType           string
	Ordering            string
}

type EntryRepository interface {
	Create(ctx context.Context, entry *model.WaterEntry) error
	Update(ctx context.Context, entry *model.WaterEntry) error
	Delete(ctx context.Context, id uint) error
	BulkDelete(ctx context.Context, ids []uint) error
	FindByID(ctx context.Context, id uint) (*model.WaterEntry, error)
	List(ctx context.Context, filter EntryFilter, page, limit int) ([]model.WaterEntry, int64, error)
	ListAll(ctx context.Context, filter EntryFilter) ([]model.WaterEntry, error)
	Recent(ctx context.Context, n int) ([]model.WaterEntry, error)
	LastPipelineReading(ctx context.Context, sourceID uint, onOrBefore *time.Time) (*model.WaterEntry, error)
}

type entryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) Create(ctx context.Context, entry *model.WaterEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *entryRepository) Update(ctx context.Context, entry *model.WaterEntry) error {
	return GetDB(ctx, r.db).Save(entry).Error
}

func (r *entryRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.WaterEntry{}).Error
}

func (r *entryRepository) BulkDelete(ctx context.Context, ids []uint) error {
	return GetDB(ctx, r.db).Where("id IN ?", ids).Delete(&model.WaterEntry{}).Error
}

func (r *entryRepository) FindByID(ctx context.Context, id uint) (*model.WaterEntry, error) {
	var entry model.WaterEntry
	if err := r.preloaded(GetDB(ctx, r.db)).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) List(ctx context.Context, filter EntryFilter, page, limit int) ([]model.WaterEntry, int64, error) {
	var entries []model.WaterEntry
	var total int64

	query := r.filtered(GetDB(ctx, r.db), filter)
	if err := query.Model(&model.WaterEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := r.preloaded(query).Order(orderClause(filter.Ordering)).
		Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *entryRepository) ListAll(ctx context.Context, filter EntryFilter) ([]model.WaterEntry, error) {
	var entries []model.WaterEntry
	query := r.filtered(GetDB(ctx, r.db), filter)
	if err := r.preloaded(query).Order(orderClause(filter.Ordering)).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *entryRepository) Recent(ctx context.Context, n int) ([]model.WaterEntry, error) {
	var entries []model.WaterEntry
	if err := r.preloaded(GetDB(ctx, r.db)).
		Order("entry_date desc, created_at desc").Limit(n).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// LastPipelineReading finds the newest entry with a meter reading for a
// pipeline source, optionally restricted to entries on or before a date.
func (r *entryRepository) LastPipelineReading(ctx context.Context, sourceID uint, onOrBefore *time.Time) (*model.WaterEntry, error) {
	query := GetDB(ctx, r.db).
		Where("source_id = ? AND meter_reading_current IS NOT NULL", sourceID)
	if onOrBefore != nil {
		query = query.Where("entry_date <= ?", *onOrBefore)
	}

	var entry model.WaterEntry
	if err := query.Order("entry_date desc, id desc").First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *entryRepository) preloaded(db *gorm.DB) *gorm.DB {
	return db.Preload("Source").Preload("LoadingLocation").Preload("UnloadingLocation").
		Preload("Vehicle").Preload("CreatedBy")
}

func (r *entryRepository) filtered(db *gorm.DB, f EntryFilter) *gorm.DB {
	if f.VehicleID != nil {
		db = db.Where("vehicle_id = ?", *f.VehicleID)
	}
	if f.LocationID != nil {
		db = db.Where("loading_location_id = ? OR unloading_location_id = ?", *f.LocationID, *f.LocationID)
	}
	if f.LoadingLocationID != nil {
		db = db.Where("loading_location_id = ?", *f.LoadingLocationID)
	}
	if f.UnloadingLocationID != nil {
		db = db.Where("unloading_location_id = ?", *f.UnloadingLocationID)
	}
	if f.SourceID != nil {
		db = db.Where("source_id = ?", *f.SourceID)
	}
	if f.StartDate != nil {
		db = db.Where("entry_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		db = db.Where("entry_date <= ?", *f.EndDate)
	}

	switch f.WaterType {
	case "", "All":
	case "Corporation":
		db = db.Where("source_id IN (?)",
			r.db.Model(&model.MasterSource{}).Select("id").Where("source_type = ?", model.SourceTypePipeline))
	default:
		db = db.Where("water_type = ?", f.WaterType)
	}
	return db
}

// orderClause whitelists user-supplied ordering keys ("-total_cost" style).
func orderClause(ordering string) string {
	allowed := map[string]string{
		"entry_date":            "entry_date",
		"created_at":            "created_at",
		"total_cost":            "total_cost",
		"total_quantity_liters": "total_quantity_liters",
	}

	desc := strings.HasPrefix(ordering, "-")
	key := strings.TrimPrefix(ordering, "-")
	col, ok := allowed[key]
	if !ok {
		return "entry_date desc, created_at desc"
	}
	if desc {
		return col + " desc"
	}
	return col
}
