package repository

import (
	"context"

	"watertracker/internal/model"

	"gorm.io/gorm"
)

type SourceRepository interface {
	Create(ctx context.Context, src *model.MasterSource) error
	Update(ctx context.Context, src *model.MasterSource) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.MasterSource, error)
	FindVendorByID(ctx context.Context, id uint) (*model.MasterSource, error)
	List(ctx context.Context) ([]model.MasterSource, error)
	ListActive(ctx context.Context) ([]model.MasterSource, error)
}

type sourceRepository struct {
	db *gorm.DB
}

func NewSourceRepository(db *gorm.DB) SourceRepository {
	return &sourceRepository{db: db}
}

func (r *sourceRepository) Create(ctx context.Context, src *model.MasterSource) error {
	return GetDB(ctx, r.db).Create(src).Error
}

func (r *sourceRepository) Update(ctx context.Context, src *model.MasterSource) error {
	return GetDB(ctx, r.db).Save(src).Error
}

func (r *sourceRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.MasterSource{}).Error
}

func (r *sourceRepository) FindByID(ctx context.Context, id uint) (*model.MasterSource, error) {
	var src model.MasterSource
	if err := GetDB(ctx, r.db).First(&src, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &src, nil
}

func (r *sourceRepository) FindVendorByID(ctx context.Context, id uint) (*model.MasterSource, error) {
	var src model.MasterSource
	if err := GetDB(ctx, r.db).First(&src, "id = ? AND source_type = ?", id, model.SourceTypeVendor).Error; err != nil {
		return nil, err
	}
	return &src, nil
}

func (r *sourceRepository) List(ctx context.Context) ([]model.MasterSource, error) {
	var sources []model.MasterSource
	if err := GetDB(ctx, r.db).Order("source_name").Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}

func (r *sourceRepository) ListActive(ctx context.Context) ([]model.MasterSource, error) {
	var sources []model.MasterSource
	if err := GetDB(ctx, r.db).Where("is_active = ?", true).Order("source_name").Find(&sources).Error; err != nil {
		return nil, err
	}
	return sources, nil
}
