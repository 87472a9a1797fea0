package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"watertracker/internal/model"
	"watertracker/internal/repository"
)

// --- DTOs ---

type LocationRequest struct {
	LocationName string `json:"location_name" binding:"required"`
	LocationType string `json:"location_type" binding:"omitempty,oneof=Loading Unloading Both"`
	Address      string `json:"address"`
	Description  string `json:"description"`
	IsActive     *bool  `json:"is_active"`
	SortOrder    *int   `json:"sort_order"`
}

type SourceRequest struct {
	SourceName string `json:"source_name" binding:"required"`
	SourceType string `json:"source_type" binding:"required,oneof=Internal_Bore Internal_Well Pipeline Vendor"`
	IsActive   *bool  `json:"is_active"`
}

type InternalVehicleRequest struct {
	VehicleName    string `json:"vehicle_name" binding:"required"`
	CapacityLiters int    `json:"capacity_liters" binding:"required,gt=0"`
}

type VendorVehicleRequest struct {
	VendorID       uint   `json:"vendor_id" binding:"required"`
	VehicleName    string `json:"vehicle_name" binding:"required"`
	CapacityLiters int    `json:"capacity_liters" binding:"required,gt=0"`
	IsActive       *bool  `json:"is_active"`
}

type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

type ReorderRequest struct {
	Orders []repository.SortOrderUpdate `json:"orders" binding:"required,min=1"`
}

// DropdownData is the one-shot payload the entry forms load on mount.
type DropdownData struct {
	Locations        []model.MasterLocation        `json:"locations"`
	Sources          []model.MasterSource          `json:"sources"`
	InternalVehicles []model.MasterInternalVehicle `json:"internal_vehicles"`
	VendorVehicles   []model.MasterVendorVehicle   `json:"vendor_vehicles"`
}

// MasterService is business logic for the reference data the rest of the
// system hangs off: locations, sources and vehicles.
type MasterService interface {
	CreateLocation(ctx context.Context, userID string, req LocationRequest) (*model.MasterLocation, error)
	UpdateLocation(ctx context.Context, userID string, id uint, req LocationRequest) (*model.MasterLocation, error)
	DeleteLocation(ctx context.Context, userID string, id uint) error
	ListLocations(ctx context.Context) ([]model.MasterLocation, error)
	BulkDeleteLocations(ctx context.Context, userID string, ids []uint) error
	ReorderLocations(ctx context.Context, userID string, orders []repository.SortOrderUpdate) error

	CreateSource(ctx context.Context, userID string, req SourceRequest) (*model.MasterSource, error)
	UpdateSource(ctx context.Context, userID string, id uint, req SourceRequest) (*model.MasterSource, error)
	DeleteSource(ctx context.Context, userID string, id uint) error
	ListSources(ctx context.Context) ([]model.MasterSource, error)

	CreateInternalVehicle(ctx context.Context, userID string, req InternalVehicleRequest) (*model.MasterInternalVehicle, error)
	UpdateInternalVehicle(ctx context.Context, userID string, id uint, req InternalVehicleRequest) (*model.MasterInternalVehicle, error)
	DeleteInternalVehicle(ctx context.Context, userID string, id uint) error
	ListInternalVehicles(ctx context.Context) ([]model.MasterInternalVehicle, error)

	CreateVendorVehicle(ctx context.Context, userID string, req VendorVehicleRequest) (*model.MasterVendorVehicle, error)
	UpdateVendorVehicle(ctx context.Context, userID string, id uint, req VendorVehicleRequest) (*model.MasterVendorVehicle, error)
	DeleteVendorVehicle(ctx context.Context, userID string, id uint) error
	ListVendorVehicles(ctx context.Context) ([]model.MasterVendorVehicle, error)

	GetDropdownData(ctx context.Context) (*DropdownData, error)
}

type masterService struct {
	locationRepo repository.LocationRepository
	sourceRepo   repository.SourceRepository
	vehicleRepo  repository.VehicleRepository
	audit        AuditService
}

func NewMasterService(
	locationRepo repository.LocationRepository,
	sourceRepo repository.SourceRepository,
	vehicleRepo repository.VehicleRepository,
	audit AuditService,
) MasterService {
	return &masterService{
		locationRepo: locationRepo,
		sourceRepo:   sourceRepo,
		vehicleRepo:  vehicleRepo,
		audit:        audit,
	}
}

// --- Locations ---

func (s *masterService) CreateLocation(ctx context.Context, userID string, req LocationRequest) (*model.MasterLocation, error) {
	loc := &model.MasterLocation{
		LocationName: req.LocationName,
		LocationType: req.LocationType,
		Address:      req.Address,
		Description:  req.Description,
		IsActive:     true,
	}
	if loc.LocationType == "" {
		loc.LocationType = "Unloading"
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		loc.SortOrder = *req.SortOrder
	}

	if err := s.locationRepo.Create(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	s.audit.Log(ctx, userID, model.ActionCreateMaster, strconv.Itoa(int(loc.ID)), loc.LocationName, map[string]interface{}{
		"entity": "location", "location_type": loc.LocationType,
	})
	return loc, nil
}

func (s *masterService) UpdateLocation(ctx context.Context, userID string, id uint, req LocationRequest) (*model.MasterLocation, error) {
	loc, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("location not found")
	}

	loc.LocationName = req.LocationName
	if req.LocationType != "" {
		loc.LocationType = req.LocationType
	}
	loc.Address = req.Address
	loc.Description = req.Description
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		loc.SortOrder = *req.SortOrder
	}

	if err := s.locationRepo.Update(ctx, loc); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	s.audit.Log(ctx, userID, model.ActionUpdateMaster, strconv.Itoa(int(loc.ID)), loc.LocationName, map[string]interface{}{
		"entity": "location",
	})
	return loc, nil
}

func (s *masterService) DeleteLocation(ctx context.Context, userID string, id uint) error {
	loc, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return errors.New("location not found")
	}
	if err := s.locationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionDeleteMaster, strconv.Itoa(int(id)), loc.LocationName, map[string]interface{}{
		"entity": "location",
	})
	return nil
}

func (s *masterService) ListLocations(ctx context.Context) ([]model.MasterLocation, error) {
	return s.locationRepo.List(ctx)
}

func (s *masterService) BulkDeleteLocations(ctx context.Context, userID string, ids []uint) error {
	if err := s.locationRepo.BulkDelete(ctx, ids); err != nil {
		return fmt.Errorf("failed to bulk delete locations: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionBulkDeleteRows, "", "locations", map[string]interface{}{
		"entity": "location", "ids": ids,
	})
	return nil
}

func (s *masterService) ReorderLocations(ctx context.Context, userID string, orders []repository.SortOrderUpdate) error {
	if err := s.locationRepo.Reorder(ctx, orders); err != nil {
		return fmt.Errorf("failed to reorder locations: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionReorderMaster, "", "locations", map[string]interface{}{
		"entity": "location", "count": len(orders),
	})
	return nil
}

// --- Sources ---

func (s *masterService) CreateSource(ctx context.Context, userID string, req SourceRequest) (*model.MasterSource, error) {
	src := &model.MasterSource{
		SourceName: req.SourceName,
		SourceType: req.SourceType,
		IsActive:   true,
	}
	if req.IsActive != nil {
		src.IsActive = *req.IsActive
	}

	if err := s.sourceRepo.Create(ctx, src); err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionCreateMaster, strconv.Itoa(int(src.ID)), src.SourceName, map[string]interface{}{
		"entity": "source", "source_type": src.SourceType,
	})
	return src, nil
}

func (s *masterService) UpdateSource(ctx context.Context, userID string, id uint, req SourceRequest) (*model.MasterSource, error) {
	src, err := s.sourceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("source not found")
	}

	src.SourceName = req.SourceName
	src.SourceType = req.SourceType
	if req.IsActive != nil {
		src.IsActive = *req.IsActive
	}

	if err := s.sourceRepo.Update(ctx, src); err != nil {
		return nil, fmt.Errorf("failed to update source: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionUpdateMaster, strconv.Itoa(int(src.ID)), src.SourceName, map[string]interface{}{
		"entity": "source",
	})
	return src, nil
}

func (s *masterService) DeleteSource(ctx context.Context, userID string, id uint) error {
	src, err := s.sourceRepo.FindByID(ctx, id)
	if err != nil {
		return errors.New("source not found")
	}
	if err := s.sourceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionDeleteMaster, strconv.Itoa(int(id)), src.SourceName, map[string]interface{}{
		"entity": "source",
	})
	return nil
}

func (s *masterService) ListSources(ctx context.Context) ([]model.MasterSource, error) {
	return s.sourceRepo.List(ctx)
}

// --- Internal vehicles ---

func (s *masterService) CreateInternalVehicle(ctx context.Context, userID string, req InternalVehicleRequest) (*model.MasterInternalVehicle, error) {
	v := &model.MasterInternalVehicle{
		VehicleName:    req.VehicleName,
		CapacityLiters: req.CapacityLiters,
	}
	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionCreateMaster, strconv.Itoa(int(v.ID)), v.VehicleName, map[string]interface{}{
		"entity": "internal_vehicle", "capacity_liters": v.CapacityLiters,
	})
	return v, nil
}

func (s *masterService) UpdateInternalVehicle(ctx context.Context, userID string, id uint, req InternalVehicleRequest) (*model.MasterInternalVehicle, error) {
	v, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("vehicle not found")
	}

	v.VehicleName = req.VehicleName
	v.CapacityLiters = req.CapacityLiters
	if err := s.vehicleRepo.Update(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionUpdateMaster, strconv.Itoa(int(v.ID)), v.VehicleName, map[string]interface{}{
		"entity": "internal_vehicle",
	})
	return v, nil
}

func (s *masterService) DeleteInternalVehicle(ctx context.Context, userID string, id uint) error {
	v, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return errors.New("vehicle not found")
	}
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionDeleteMaster, strconv.Itoa(int(id)), v.VehicleName, map[string]interface{}{
		"entity": "internal_vehicle",
	})
	return nil
}

func (s *masterService) ListInternalVehicles(ctx context.Context) ([]model.MasterInternalVehicle, error) {
	return s.vehicleRepo.List(ctx)
}

// --- Vendor vehicles ---

func (s *masterService) CreateVendorVehicle(ctx context.Context, userID string, req VendorVehicleRequest) (*model.MasterVendorVehicle, error) {
	vendor, err := s.sourceRepo.FindByID(ctx, req.VendorID)
	if err != nil {
		return nil, errors.New("vendor not found")
	}
	if vendor.SourceType != model.SourceTypeVendor {
		return nil, errors.New("vendor vehicles require a Vendor source")
	}

	v := &model.MasterVendorVehicle{
		VendorID:       req.VendorID,
		VehicleName:    req.VehicleName,
		CapacityLiters: req.CapacityLiters,
		IsActive:       true,
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}

	if err := s.vehicleRepo.CreateVendorVehicle(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to create vendor vehicle: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionCreateMaster, strconv.Itoa(int(v.ID)), v.VehicleName, map[string]interface{}{
		"entity": "vendor_vehicle", "vendor_id": v.VendorID,
	})
	return v, nil
}

func (s *masterService) UpdateVendorVehicle(ctx context.Context, userID string, id uint, req VendorVehicleRequest) (*model.MasterVendorVehicle, error) {
	v, err := s.vehicleRepo.FindVendorVehicleByID(ctx, id)
	if err != nil {
		return nil, errors.New("vendor vehicle not found")
	}

	v.VendorID = req.VendorID
	v.VehicleName = req.VehicleName
	v.CapacityLiters = req.CapacityLiters
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}

	if err := s.vehicleRepo.UpdateVendorVehicle(ctx, v); err != nil {
		return nil, fmt.Errorf("failed to update vendor vehicle: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionUpdateMaster, strconv.Itoa(int(v.ID)), v.VehicleName, map[string]interface{}{
		"entity": "vendor_vehicle",
	})
	return v, nil
}

func (s *masterService) DeleteVendorVehicle(ctx context.Context, userID string, id uint) error {
	if err := s.vehicleRepo.DeleteVendorVehicle(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vendor vehicle: %w", err)
	}
	s.audit.Log(ctx, userID, model.ActionDeleteMaster, strconv.Itoa(int(id)), "", map[string]interface{}{
		"entity": "vendor_vehicle",
	})
	return nil
}

func (s *masterService) ListVendorVehicles(ctx context.Context) ([]model.MasterVendorVehicle, error) {
	return s.vehicleRepo.ListVendorVehicles(ctx)
}

// --- Dropdown data ---

func (s *masterService) GetDropdownData(ctx context.Context) (*DropdownData, error) {
	locations, err := s.locationRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	sources, err := s.sourceRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	internalVehicles, err := s.vehicleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	vendorVehicles, err := s.vehicleRepo.ListVendorVehicles(ctx)
	if err != nil {
		return nil, err
	}

	return &DropdownData{
		Locations:        locations,
		Sources:          sources,
		InternalVehicles: internalVehicles,
		VendorVehicles:   vendorVehicles,
	}, nil
}
