package repository

import (
	"context"

	"watertracker/internal/model"

	"gorm.io/gorm"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *model.MasterInternalVehicle) error
	Update(ctx context.Context, v *model.MasterInternalVehicle) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.MasterInternalVehicle, error)
	List(ctx context.Context) ([]model.MasterInternalVehicle, error)

	CreateVendorVehicle(ctx context.Context, v *model.MasterVendorVehicle) error
	UpdateVendorVehicle(ctx context.Context, v *model.MasterVendorVehicle) error
	DeleteVendorVehicle(ctx context.Context, id uint) error
	FindVendorVehicleByID(ctx context.Context, id uint) (*model.MasterVendorVehicle, error)
	ListVendorVehicles(ctx context.Context) ([]model.MasterVendorVehicle, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *model.MasterInternalVehicle) error {
	return GetDB(ctx, r.db).Create(v).Error
}

func (r *vehicleRepository) Update(ctx context.Context, v *model.MasterInternalVehicle) error {
	return GetDB(ctx, r.db).Save(v).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.MasterInternalVehicle{}).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uint) (*model.MasterInternalVehicle, error) {
	var v model.MasterInternalVehicle
	if err := GetDB(ctx, r.db).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]model.MasterInternalVehicle, error) {
	var vehicles []model.MasterInternalVehicle
	if err := GetDB(ctx, r.db).Order("vehicle_name").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) CreateVendorVehicle(ctx context.Context, v *model.MasterVendorVehicle) error {
	return GetDB(ctx, r.db).Create(v).Error
}

func (r *vehicleRepository) UpdateVendorVehicle(ctx context.Context, v *model.MasterVendorVehicle) error {
	return GetDB(ctx, r.db).Save(v).Error
}

func (r *vehicleRepository) DeleteVendorVehicle(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.MasterVendorVehicle{}).Error
}

func (r *vehicleRepository) FindVendorVehicleByID(ctx context.Context, id uint) (*model.MasterVendorVehicle, error) {
	var v model.MasterVendorVehicle
	if err := GetDB(ctx, r.db).Preload("Vendor").First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) ListVendorVehicles(ctx context.Context) ([]model.MasterVendorVehicle, error) {
	var vehicles []model.MasterVendorVehicle
	if err := GetDB(ctx, r.db).Preload("Vendor").Order("vehicle_name").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}
