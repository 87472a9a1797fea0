package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Shift enum constants
const (
	ShiftMorning = "Morning"
	ShiftEvening = "Evening"
	ShiftNight   = "Night"
)

// WaterEntry is one water procurement transaction (vendor purchase, internal
// trip, or pipeline meter period). Quantities are stored in liters; pipeline
// meter readings are in KL.
type WaterEntry struct {
	ID                   uint                   `gorm:"primaryKey" json:"id"`
	EntryDate            time.Time              `gorm:"type:date;not null;index" json:"entry_date"`
	SourceID             *uint                  `gorm:"index" json:"source_id"`
	Source               *MasterSource          `gorm:"foreignKey:SourceID;constraint:OnDelete:SET NULL" json:"source,omitempty"`
	LoadingLocationID    *uint                  `gorm:"index" json:"loading_location_id"`
	LoadingLocation      *MasterLocation        `gorm:"foreignKey:LoadingLocationID;constraint:OnDelete:SET NULL" json:"loading_location,omitempty"`
	UnloadingLocationID  *uint                  `gorm:"index" json:"unloading_location_id"`
	UnloadingLocation    *MasterLocation        `gorm:"foreignKey:UnloadingLocationID;constraint:OnDelete:SET NULL" json:"unloading_location,omitempty"`
	Shift                string                 `gorm:"type:varchar(20)" json:"shift"`
	WaterType            string                 `gorm:"type:varchar(50)" json:"water_type"`
	VehicleID            *uint                  `gorm:"index" json:"vehicle_id"`
	Vehicle              *MasterInternalVehicle `gorm:"foreignKey:VehicleID;constraint:OnDelete:SET NULL" json:"vehicle,omitempty"`
	LoadCount            *int                   `json:"load_count"`
	MeterReadingCurrent  *int                   `json:"meter_reading_current"`
	MeterReadingPrevious *int                   `json:"meter_reading_previous"`
	ManualCapacityLiters *int                   `json:"manual_capacity_liters"`

	TotalQuantityLiters decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_quantity_liters"`
	TotalCost           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_cost"`

	SnapshotCostPerLiter  decimal.NullDecimal `gorm:"type:decimal(10,4)" json:"snapshot_cost_per_liter"`
	SnapshotCostPerKL     decimal.NullDecimal `gorm:"column:snapshot_cost_per_kl;type:decimal(10,2)" json:"snapshot_cost_per_kl"`
	SnapshotPaisePerLiter decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"snapshot_paise_per_liter"`

	Comments string `gorm:"type:varchar(300)" json:"comments"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"created_by,omitempty"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (WaterEntry) TableName() string { return "water_entries" }
