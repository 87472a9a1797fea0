package repository

import (
	"context"

	"watertracker/internal/model"

	"gorm.io/gorm"
)

// SortOrderUpdate is one row of a reorder request.
type SortOrderUpdate struct {
	ID        uint `json:"id" binding:"required"`
	SortOrder int  `json:"sort_order"`
}

type LocationRepository interface {
	Create(ctx context.Context, loc *model.MasterLocation) error
	Update(ctx context.Context, loc *model.MasterLocation) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.MasterLocation, error)
	List(ctx context.Context) ([]model.MasterLocation, error)
	ListActive(ctx context.Context) ([]model.MasterLocation, error)
	BulkDelete(ctx context.Context, ids []uint) error
	Reorder(ctx context.Context, orders []SortOrderUpdate) error
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, loc *model.MasterLocation) error {
	return GetDB(ctx, r.db).Create(loc).Error
}

func (r *locationRepository) Update(ctx context.Context, loc *model.MasterLocation) error {
	return GetDB(ctx, r.db).Save(loc).Error
}

func (r *locationRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.MasterLocation{}).Error
}

func (r *locationRepository) FindByID(ctx context.Context, id uint) (*model.MasterLocation, error) {
	var loc model.MasterLocation
	if err := GetDB(ctx, r.db).First(&loc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepository) List(ctx context.Context) ([]model.MasterLocation, error) {
	var locs []model.MasterLocation
	if err := GetDB(ctx, r.db).Order("sort_order, location_name").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *locationRepository) ListActive(ctx context.Context) ([]model.MasterLocation, error) {
	var locs []model.MasterLocation
	if err := GetDB(ctx, r.db).Where("is_active = ?", true).Order("sort_order, location_name").Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}

func (r *locationRepository) BulkDelete(ctx context.Context, ids []uint) error {
	return GetDB(ctx, r.db).Where("id IN ?", ids).Delete(&model.MasterLocation{}).Error
}

func (r *locationRepository) Reorder(ctx context.Context, orders []SortOrderUpdate) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, item := range orders {
			if err := tx.Model(&model.MasterLocation{}).Where("id = ?", item.ID).Update("sort_order", item.SortOrder).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
