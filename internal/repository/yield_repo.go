package repository

import (
	"context"
	"errors"
	"time"

	"watertracker/internal/model"

	"gorm.io/gorm"
)

// ReadingFilter narrows yield/consumption entry listings.
type ReadingFilter struct {
	LocationID *uint
	StartDate  *time.Time
	EndDate    *time.Time
	Ordering   string
}

type YieldRepository interface {
	CreateLocation(ctx context.Context, loc *model.YieldLocation) error
	UpdateLocation(ctx context.Context, loc *model.YieldLocation) error
	DeleteLocation(ctx context.Context, id uint) error
	FindLocationByID(ctx context.Context, id uint) (*model.YieldLocation, error)
	ListLocations(ctx context.Context) ([]model.YieldLocation, error)
	ListActiveLocations(ctx context.Context) ([]model.YieldLocation, error)
	BulkDeleteLocations(ctx context.Context, ids []uint) error
	ReorderLocations(ctx context.Context, orders []SortOrderUpdate) error

	CreateEntry(ctx context.Context, entry *model.YieldEntry) error
	UpdateEntry(ctx context.Context, entry *model.YieldEntry) error
	DeleteEntry(ctx context.Context, id uint) error
	BulkDeleteEntries(ctx context.Context, ids []uint) error
	FindEntryByID(ctx context.Context, id uint) (*model.YieldEntry, error)
	ListEntries(ctx context.Context, filter ReadingFilter, page, limit int) ([]model.YieldEntry, int64, error)
	ListAllEntries(ctx context.Context, filter ReadingFilter) ([]model.YieldEntry, error)
	FindEntryByLocationAndDate(ctx context.Context, locationID uint, date time.Time) (*model.YieldEntry, error)
	// LastReadingBefore returns the newest entry for a location strictly
	// before date, or nil when the location has no prior history.
	LastReadingBefore(ctx context.Context, locationID uint, date time.Time) (*model.YieldEntry, error)
	// LastReadingOnOrBefore is the <=-variant used by the last-reading lookup
	// endpoint and by update flows (which exclude the row being edited).
	LastReadingOnOrBefore(ctx context.Context, locationID uint, date time.Time, excludeID uint) (*model.YieldEntry, error)
	UpsertEntry(ctx context.Context, entry *model.YieldEntry) error
}

type yieldRepository struct {
	db *gorm.DB
}

func NewYieldRepository(db *gorm.DB) YieldRepository {
	return &yieldRepository{db: db}
}

func (r *yieldRepository) CreateLocation(ctx context.Context, loc *model.YieldLocation) error {
	return GetDB(ctx, r.db).Create(loc).Error
}

func (r *yieldRepository) UpdateLocation(ctx context.Context, loc *model.YieldLocation) error {
	return GetDB(ctx, r.db).Save(loc).Error
}

func (r *yieldRepository) DeleteLocation(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.YieldLocation{}).Error
}

func (r *yieldRepository) FindLocationByID(ctx context.Context, id uint) (*model.YieldLocation, error) {
	var loc model.YieldLocation
	if err := GetDB(ctx, r.db).First(&loc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *yieldRepository) ListLocations(ctx context.Context) ([]model.YieldLocation, error) {
	var locs []model.YieldLocation
	if err := GetDB(ctx, r.db).Order("yield_type, sort_order, location_name").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *yieldRepository) ListActiveLocations(ctx context.Context) ([]model.YieldLocation, error) {
	var locs []model.YieldLocation
	if err := GetDB(ctx, r.db).Where("is_active = ?", true).
		Order("yield_type, sort_order, location_name").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *yieldRepository) BulkDeleteLocations(ctx context.Context, ids []uint) error {
	return GetDB(ctx, r.db).Where("id IN ?", ids).Delete(&model.YieldLocation{}).Error
}

func (r *yieldRepository) ReorderLocations(ctx context.Context, orders []SortOrderUpdate) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, item := range orders {
			if err := tx.Model(&model.YieldLocation{}).Where("id = ?", item.ID).Update("sort_order", item.SortOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *yieldRepository) CreateEntry(ctx context.Context, entry *model.YieldEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *yieldRepository) UpdateEntry(ctx context.Context, entry *model.YieldEntry) error {
	return GetDB(ctx, r.db).Save(entry).Error
}

func (r *yieldRepository) DeleteEntry(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.YieldEntry{}).Error
}

func (r *yieldRepository) BulkDeleteEntries(ctx context.Context, ids []uint) error {
	return GetDB(ctx, r.db).Where("id IN ?", ids).Delete(&model.YieldEntry{}).Error
}

func (r *yieldRepository) FindEntryByID(ctx context.Context, id uint) (*model.YieldEntry, error) {
	var entry model.YieldEntry
	if err := GetDB(ctx, r.db).Preload("Location").First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *yieldRepository) ListEntries(ctx context.Context, filter ReadingFilter, page, limit int) ([]model.YieldEntry, int64, error) {
	var entries []model.YieldEntry
	var total int64

	query := yieldFiltered(GetDB(ctx, r.db), filter)
	if err := query.Model(&model.YieldEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Location").Order(readingOrderClause(filter.Ordering)).
		Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *yieldRepository) ListAllEntries(ctx context.Context, filter ReadingFilter) ([]model.YieldEntry, error) {
	var entries []model.YieldEntry
	if err := yieldFiltered(GetDB(ctx, r.db), filter).Preload("Location").
		Order(readingOrderClause(filter.Ordering)).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *yieldRepository) FindEntryByLocationAndDate(ctx context.Context, locationID uint, date time.Time) (*model.YieldEntry, error) {
	var entry model.YieldEntry
	err := GetDB(ctx, r.db).Where("location_id = ? AND date = ?", locationID, date).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *yieldRepository) LastReadingBefore(ctx context.Context, locationID uint, date time.Time) (*model.YieldEntry, error) {
	var entry model.YieldEntry
	err := GetDB(ctx, r.db).Where("location_id = ? AND date < ?", locationID, date).
		Order("date desc, created_at desc").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *yieldRepository) LastReadingOnOrBefore(ctx context.Context, locationID uint, date time.Time, excludeID uint) (*model.YieldEntry, error) {
	query := GetDB(ctx, r.db).Where("location_id = ? AND date <= ?", locationID, date)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}

	var entry model.YieldEntry
	err := query.Order("date desc, created_at desc").First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpsertEntry creates or replaces the single entry per (location, date).
func (r *yieldRepository) UpsertEntry(ctx context.Context, entry *model.YieldEntry) error {
	existing, err := r.FindEntryByLocationAndDate(ctx, entry.LocationID, entry.Date)
	if err != nil {
		return err
	}
	if existing != nil {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		return GetDB(ctx, r.db).Save(entry).Error
	}
	return GetDB(ctx, r.db).Create(entry).Error
}

func yieldFiltered(db *gorm.DB, f ReadingFilter) *gorm.DB {
	if f.LocationID != nil {
		db = db.Where("location_id = ?", *f.LocationID)
	}
	if f.StartDate != nil {
		db = db.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		db = db.Where("date <= ?", *f.EndDate)
	}
	return db
}

func readingOrderClause(ordering string) string {
	switch ordering {
	case "date":
		return "date, created_at"
	case "-date", "":
		return "date desc, created_at desc"
	case "current_reading":
		return "current_reading"
	case "-current_reading":
		return "current_reading desc"
	default:
		return "date desc, created_at desc"
	}
}
