package repository

import (
	"context"
	"errors"
	"time"

	"watertracker/internal/model"

	"gorm.io/gorm"
)

// ConsumptionFilter adds the location-join filters consumption listings need
// on top of the shared reading filter fields.
type ConsumptionFilter struct {
	ReadingFilter
	ConsumptionType string
	CategoryID      *uint
}

type ConsumptionRepository interface {
	CreateCategory(ctx context.Context, cat *model.ConsumptionCategory) error
	UpdateCategory(ctx context.Context, cat *model.ConsumptionCategory) error
	DeleteCategory(ctx context.Context, id uint) error
	FindCategoryByID(ctx context.Context, id uint) (*model.ConsumptionCategory, error)
	ListCategories(ctx context.Context) ([]model.ConsumptionCategory, error)
	BulkDeleteCategories(ctx context.Context, ids []uint) error

	CreateLocation(ctx context.Context, loc *model.ConsumptionLocation) error
	UpdateLocation(ctx context.Context, loc *model.ConsumptionLocation) error
	DeleteLocation(ctx context.Context, id uint) error
	FindLocationByID(ctx context.Context, id uint) (*model.ConsumptionLocation, error)
	ListLocations(ctx context.Context) ([]model.ConsumptionLocation, error)
	ListActiveLocationsByType(ctx context.Context, consumptionType string) ([]model.ConsumptionLocation, error)
	BulkDeleteLocations(ctx context.Context, ids []uint) error
	ReorderLocations(ctx context.Context, orders []SortOrderUpdate) error

	CreateEntry(ctx context.Context, entry *model.ConsumptionEntry) error
	UpdateEntry(ctx context.Context, entry *model.ConsumptionEntry) error
	DeleteEntry(ctx context.Context, id uint) error
	BulkDeleteEntries(ctx context.Context, ids []uint) error
	FindEntryByID(ctx context.Context, id uint) (*model.ConsumptionEntry, error)
	ListEntries(ctx context.Context, filter ConsumptionFilter, page, limit int) ([]model.ConsumptionEntry, int64, error)
	ListAllEntries(ctx context.Context, filter ConsumptionFilter) ([]model.ConsumptionEntry, error)
	FindEntryByLocationAndDate(ctx context.Context, locationID uint, date time.Time) (*model.ConsumptionEntry, error)
	LastReadingBefore(ctx context.Context, locationID uint, date time.Time) (*model.ConsumptionEntry, error)
	LastReadingOnOrBefore(ctx context.Context, locationID uint, date time.Time, excludeID uint) (*model.ConsumptionEntry, error)
	UpsertEntry(ctx context.Context, entry *model.ConsumptionEntry) error
}

type consumptionRepository struct {
	db *gorm.DB
}

func NewConsumptionRepository(db *gorm.DB) ConsumptionRepository {
	return &consumptionRepository{db: db}
}

func (r *consumptionRepository) CreateCategory(ctx context.Context, cat *model.ConsumptionCategory) error {
	return GetDB(ctx, r.db).Create(cat).Error
}

func (r *consumptionRepository) UpdateCategory(ctx context.Context, cat *model.ConsumptionCategory) error {
	return GetDB(ctx, r.db).Save(cat).Error
}

func (r *consumptionRepository) DeleteCategory(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ConsumptionCategory{}).Error
}

func (r *consumptionRepository) FindCategoryByID(ctx context.Context, id uint) (*model.ConsumptionCategory, error) {
	var cat model.ConsumptionCategory
	if err := GetDB(ctx, r.db).First(&cat, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *consumptionRepository) ListCategories(ctx context.Context) ([]model.ConsumptionCategory, error) {
	var cats []model.ConsumptionCategory
	if err := GetDB(ctx, r.db).Order("name").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *consumptionRepository) BulkDeleteCategories(ctx context.Context, ids []uint) error {
	return GetDB(ctx, r.db).Where("id IN ?", ids).Delete(&model.ConsumptionCategory{}).Error
}

func (r *consumptionRepository) CreateLocation(ctx context.Context, loc *model.ConsumptionLocation) error {
	return GetDB(ctx, r.db).Create(loc).Error
}

func (r *consumptionRepository) UpdateLocation(ctx context.Context, loc *model.ConsumptionLocation) error {
	return GetDB(ctx, r.db).Save(loc).Error
}

func (r *consumptionRepository) DeleteLocation(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ConsumptionLocation{}).Error
}

func (r *consumptionRepository) FindLocationByID(ctx context.Context, id uint) (*model.ConsumptionLocation, error) {
	var loc model.ConsumptionLocation
	if err := GetDB(ctx, r.db).Preload("Category").First(&loc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *consumptionRepository) ListLocations(ctx context.Context) ([]model.ConsumptionLocation, error) {
	var locs []model.ConsumptionLocation
	if err := GetDB(ctx, r.db).Preload("Category").
		Order("sort_order, location_name").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *consumptionRepository) ListActiveLocationsByType(ctx context.Context, consumptionType string) ([]model.ConsumptionLocation, error) {
	var locs []model.ConsumptionLocation
	query := GetDB(ctx, r.db).Preload("Category").Where("is_active = ?", true)
	if consumptionType != "" {
		query = query.Where("consumption_type = ?", consumptionType)
	}
	if err := query.Order("sort_order, location_name").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *consumptionRepository) BulkDeleteLocations(ctx context.Context, ids []uint) error {
	return GetDB(ctx, r.db).Where("id IN ?", ids).Delete(&model.ConsumptionLocation{}).Error
}

func (r *consumptionRepository) ReorderLocations(ctx context.Context, orders []SortOrderUpdate) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, item := range orders {
			if err := tx.Model(&model.ConsumptionLocation{}).Where("id = ?", item.ID).Update("sort_order", item.SortOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *consumptionRepository) CreateEntry(ctx context.Context, entry *model.ConsumptionEntry) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *consumptionRepository) UpdateEntry(ctx context.Context, entry *model.ConsumptionEntry) error {
	return GetDB(ctx, r.db).Save(entry).Error
}

func (r *consumptionRepository) DeleteEntry(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ConsumptionEntry{}).Error
}

func (r *consumptionRepository) BulkDeleteEntries(ctx context.Context, ids []uint) error {
	return GetDB(ctx, r.db).Where("id IN ?", ids).Delete(&model.ConsumptionEntry{}).Error
}

func (r *consumptionRepository) FindEntryByID(ctx context.Context, id uint) (*model.ConsumptionEntry, error) {
	var entry model.ConsumptionEntry
	if err := GetDB(ctx, r.db).Preload("Location").Preload("Location.Category").
		First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *consumptionRepository) ListEntries(ctx context.Context, filter ConsumptionFilter, page, limit int) ([]model.ConsumptionEntry, int64, error) {
	var entries []model.ConsumptionEntry
	var total int64

	query := r.filtered(GetDB(ctx, r.db), filter)
	if err := query.Model(&model.ConsumptionEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Preload("Location").Preload("Location.Category").
		Order(readingOrderClause(filter.Ordering)).Offset(offset).Limit(limit).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *consumptionRepository) ListAllEntries(ctx context.Context, filter ConsumptionFilter) ([]model.ConsumptionEntry, error) {
	var entries []model.ConsumptionEntry
	if err := r.filtered(GetDB(ctx, r.db), filter).Preload("Location").Preload("Location.Category").
		Order(readingOrderClause(filter.Ordering)).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *consumptionRepository) FindEntryByLocationAndDate(ctx context.Context, locationID uint, date time.Time) (*model.ConsumptionEntry, error) {
	var entry model.ConsumptionEntry
	err := GetDB(ctx, r.db).Where("location_id = ? AND date = ?", locationID, date).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *consumptionRepository) LastReadingBefore(ctx context.Context, locationID uint, date time.Time) (*model.ConsumptionEntry, error) {
	var entry model.ConsumptionEntry
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

func (r *consumptionRepository) LastReadingOnOrBefore(ctx context.Context, locationID uint, date time.Time, excludeID uint) (*model.ConsumptionEntry, error) {
	query := GetDB(ctx, r.db).Where("location_id = ? AND date <= ?", locationID, date)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}

	var entry model.ConsumptionEntry
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
func (r *consumptionRepository) UpsertEntry(ctx context.Context, entry *model.ConsumptionEntry) error {
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

func (r *consumptionRepository) filtered(db *gorm.DB, f ConsumptionFilter) *gorm.DB {
	db = yieldFiltered(db, f.ReadingFilter)
	if f.ConsumptionType != "" || f.CategoryID != nil {
		db = db.Joins("JOIN consumption_locations ON consumption_locations.id = consumption_entries.location_id")
		if f.ConsumptionType != "" {
			db = db.Where("consumption_locations.consumption_type = ?", f.ConsumptionType)
		}
		if f.CategoryID != nil {
			db = db.Where("consumption_locations.category_id = ?", *f.CategoryID)
		}
	}
	return db
}
