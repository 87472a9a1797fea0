package repository

import (
	"context"

	"watertracker/internal/model"

	"gorm.io/gorm"
)

// RateRepository is data access for the three rate histories and the general
// water rates. Candidate queries filter by identity only; picking the record
// effective on a given date is the engine's job.
type RateRepository interface {
	CreateInternalRate(ctx context.Context, rate *model.RateHistoryInternalVehicle) error
	UpdateInternalRate(ctx context.Context, rate *model.RateHistoryInternalVehicle) error
	DeleteInternalRate(ctx context.Context, id uint) error
	FindInternalRateByID(ctx context.Context, id uint) (*model.RateHistoryInternalVehicle, error)
	ListInternalRates(ctx context.Context, page, limit int) ([]model.RateHistoryInternalVehicle, int64, error)
	InternalRateCandidates(ctx context.Context, vehicleID, loadingLocationID uint) ([]model.RateHistoryInternalVehicle, error)

	CreateVendorRate(ctx context.Context, rate *model.RateHistoryVendor) error
	UpdateVendorRate(ctx context.Context, rate *model.RateHistoryVendor) error
	DeleteVendorRate(ctx context.Context, id uint) error
	FindVendorRateByID(ctx context.Context, id uint) (*model.RateHistoryVendor, error)
	ListVendorRates(ctx context.Context, page, limit int) ([]model.RateHistoryVendor, int64, error)
	VendorRateCandidates(ctx context.Context, sourceID uint, waterType string) ([]model.RateHistoryVendor, error)

	CreatePipelineRate(ctx context.Context, rate *model.RateHistoryPipeline) error
	UpdatePipelineRate(ctx context.Context, rate *model.RateHistoryPipeline) error
	DeletePipelineRate(ctx context.Context, id uint) error
	FindPipelineRateByID(ctx context.Context, id uint) (*model.RateHistoryPipeline, error)
	ListPipelineRates(ctx context.Context, page, limit int) ([]model.RateHistoryPipeline, int64, error)
	PipelineRateCandidates(ctx context.Context, sourceID uint) ([]model.RateHistoryPipeline, error)

	CreateGeneralRate(ctx context.Context, rate *model.GeneralWaterRate) error
	DeleteGeneralRate(ctx context.Context, id uint) error
	ListGeneralRates(ctx context.Context) ([]model.GeneralWaterRate, error)
	GeneralRateCandidates(ctx context.Context) ([]model.GeneralWaterRate, error)
}

type rateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) RateRepository {
	return &rateRepository{db: db}
}

// --- Internal vehicle rates ---

func (r *rateRepository) CreateInternalRate(ctx context.Context, rate *model.RateHistoryInternalVehicle) error {
	return GetDB(ctx, r.db).Create(rate).Error
}

func (r *rateRepository) UpdateInternalRate(ctx context.Context, rate *model.RateHistoryInternalVehicle) error {
	return GetDB(ctx, r.db).Save(rate).Error
}

func (r *rateRepository) DeleteInternalRate(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.RateHistoryInternalVehicle{}).Error
}

func (r *rateRepository) FindInternalRateByID(ctx context.Context, id uint) (*model.RateHistoryInternalVehicle, error) {
	var rate model.RateHistoryInternalVehicle
	if err := GetDB(ctx, r.db).Preload("Vehicle").Preload("LoadingLocation").First(&rate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepository) ListInternalRates(ctx context.Context, page, limit int) ([]model.RateHistoryInternalVehicle, int64, error) {
	var rates []model.RateHistoryInternalVehicle
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.RateHistoryInternalVehicle{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Vehicle").Preload("LoadingLocation").
		Order("effective_date desc, id desc").Offset(offset).Limit(limit).Find(&rates).Error; err != nil {
		return nil, 0, err
	}
	return rates, total, nil
}

func (r *rateRepository) InternalRateCandidates(ctx context.Context, vehicleID, loadingLocationID uint) ([]model.RateHistoryInternalVehicle, error) {
	var rates []model.RateHistoryInternalVehicle
	if err := GetDB(ctx, r.db).
		Where("vehicle_id = ? AND loading_location_id = ?", vehicleID, loadingLocationID).
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// --- Vendor rates ---

func (r *rateRepository) CreateVendorRate(ctx context.Context, rate *model.RateHistoryVendor) error {
	return GetDB(ctx, r.db).Create(rate).Error
}

func (r *rateRepository) UpdateVendorRate(ctx context.Context, rate *model.RateHistoryVendor) error {
	return GetDB(ctx, r.db).Save(rate).Error
}

func (r *rateRepository) DeleteVendorRate(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.RateHistoryVendor{}).Error
}

func (r *rateRepository) FindVendorRateByID(ctx context.Context, id uint) (*model.RateHistoryVendor, error) {
	var rate model.RateHistoryVendor
	if err := GetDB(ctx, r.db).Preload("Source").First(&rate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepository) ListVendorRates(ctx context.Context, page, limit int) ([]model.RateHistoryVendor, int64, error) {
	var rates []model.RateHistoryVendor
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.RateHistoryVendor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Source").
		Order("effective_date desc, id desc").Offset(offset).Limit(limit).Find(&rates).Error; err != nil {
		return nil, 0, err
	}
	return rates, total, nil
}

func (r *rateRepository) VendorRateCandidates(ctx context.Context, sourceID uint, waterType string) ([]model.RateHistoryVendor, error) {
	var rates []model.RateHistoryVendor
	if err := GetDB(ctx, r.db).
		Where("source_id = ? AND water_type = ?", sourceID, waterType).
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// --- Pipeline rates ---

func (r *rateRepository) CreatePipelineRate(ctx context.Context, rate *model.RateHistoryPipeline) error {
	return GetDB(ctx, r.db).Create(rate).Error
}

func (r *rateRepository) UpdatePipelineRate(ctx context.Context, rate *model.RateHistoryPipeline) error {
	return GetDB(ctx, r.db).Save(rate).Error
}

func (r *rateRepository) DeletePipelineRate(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.RateHistoryPipeline{}).Error
}

func (r *rateRepository) FindPipelineRateByID(ctx context.Context, id uint) (*model.RateHistoryPipeline, error) {
	var rate model.RateHistoryPipeline
	if err := GetDB(ctx, r.db).Preload("Source").First(&rate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *rateRepository) ListPipelineRates(ctx context.Context, page, limit int) ([]model.RateHistoryPipeline, int64, error) {
	var rates []model.RateHistoryPipeline
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.RateHistoryPipeline{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Source").
		Order("effective_date desc, id desc").Offset(offset).Limit(limit).Find(&rates).Error; err != nil {
		return nil, 0, err
	}
	return rates, total, nil
}

func (r *rateRepository) PipelineRateCandidates(ctx context.Context, sourceID uint) ([]model.RateHistoryPipeline, error) {
	var rates []model.RateHistoryPipeline
	if err := GetDB(ctx, r.db).Where("source_id = ?", sourceID).Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// --- General water rates ---

func (r *rateRepository) CreateGeneralRate(ctx context.Context, rate *model.GeneralWaterRate) error {
	return GetDB(ctx, r.db).Create(rate).Error
}

func (r *rateRepository) DeleteGeneralRate(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.GeneralWaterRate{}).Error
}

func (r *rateRepository) ListGeneralRates(ctx context.Context) ([]model.GeneralWaterRate, error) {
	var rates []model.GeneralWaterRate
	if err := GetDB(ctx, r.db).Order("effective_date desc, date desc").Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *rateRepository) GeneralRateCandidates(ctx context.Context) ([]model.GeneralWaterRate, error) {
	var rates []model.GeneralWaterRate
	if err := GetDB(ctx, r.db).Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}
