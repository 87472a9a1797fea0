package model

import (
	"time"
)

// SourceType enum constants
const (
	SourceTypeInternalBore = "Internal_Bore"
	SourceTypeInternalWell = "Internal_Well"
	SourceTypePipeline     = "Pipeline"
	SourceTypeVendor       = "Vendor"
)

// MasterLocation is a physical loading/unloading place referenced by water entries
type MasterLocation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	LocationName string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"location_name"`
	LocationType string    `gorm:"type:varchar(50);not null;default:'Unloading'" json:"location_type"` // Loading, Unloading, Both
	Address      string    `gorm:"type:text" json:"address"`
	Description  string    `gorm:"type:text" json:"description"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	SortOrder    int       `gorm:"default:0" json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (MasterLocation) TableName() string { return "master_locations" }

// MasterSource is a water supplier (vendor, pipeline, or internal bore/well)
type MasterSource struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SourceName string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"source_name"`
	SourceType string    `gorm:"type:varchar(50);not null;index" json:"source_type"` // Internal_Bore, Internal_Well, Pipeline, Vendor
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (MasterSource) TableName() string { return "master_sources" }

// MasterInternalVehicle is an internal tanker with a fixed capacity
type MasterInternalVehicle struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	VehicleName    string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"vehicle_name"`
	CapacityLiters int       `gorm:"not null" json:"capacity_liters"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (MasterInternalVehicle) TableName() string { return "master_internal_vehicles" }

// MasterVendorVehicle is a vendor-owned tanker bound to a vendor source
type MasterVendorVehicle struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	VendorID       uint          `gorm:"not null;index" json:"vendor_id"`
	Vendor         *MasterSource `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"vendor,omitempty"`
	VehicleName    string        `gorm:"type:varchar(100);not null" json:"vehicle_name"`
	CapacityLiters int           `gorm:"not null" json:"capacity_liters"`
	IsActive       bool          `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time     `json:"created_at"`
}

func (MasterVendorVehicle) TableName() string { return "master_vendor_vehicles" }
