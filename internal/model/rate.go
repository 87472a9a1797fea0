package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WaterType enum constants
const (
	WaterTypeDrinking = "Drinking Water"
	WaterTypeNormal   = "Normal Water (Salt)"
)

// CostType enum constants (vendor rates)
const (
	CostTypePerLoad  = "Per_Load"
	CostTypePerLiter = "Per_Liter"
)

// RateHistoryInternalVehicle prices trucking for an internal vehicle out of a
// loading location. Cost is flat per load, independent of quantity.
type RateHistoryInternalVehicle struct {
	ID                     uint                   `gorm:"primaryKey" json:"id"`
	VehicleID              *uint                  `gorm:"index" json:"vehicle_id"`
	Vehicle                *MasterInternalVehicle `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"vehicle,omitempty"`
	LoadingLocationID      *uint                  `gorm:"index" json:"loading_location_id"`
	LoadingLocation        *MasterLocation        `gorm:"foreignKey:LoadingLocationID;constraint:OnDelete:CASCADE" json:"loading_location,omitempty"`
	VehicleName            string                 `gorm:"type:varchar(100)" json:"vehicle_name"` // snapshot at entry time
	CapacityLiters         *int                   `json:"capacity_liters"`
	CostPerLoad            decimal.Decimal        `gorm:"type:decimal(10,2);not null" json:"cost_per_load"`
	EffectiveDate          time.Time              `gorm:"type:date;not null;index" json:"effective_date"`
	CalculatedCostPerLiter decimal.NullDecimal    `gorm:"type:decimal(10,4)" json:"calculated_cost_per_liter"`
	CalculatedCostPerKL    decimal.NullDecimal    `gorm:"column:calculated_cost_per_kl;type:decimal(10,4)" json:"calculated_cost_per_kl"`
	CreatedAt              time.Time              `json:"created_at"`
}

func (RateHistoryInternalVehicle) TableName() string { return "rate_history_internal_vehicles" }

// EffectiveOn implements engine.Versioned
func (r RateHistoryInternalVehicle) EffectiveOn() time.Time { return r.EffectiveDate }

// RecordID implements engine.Versioned
func (r RateHistoryInternalVehicle) RecordID() uint { return r.ID }

// RateHistoryVendor prices vendor-supplied water either per liter or per load
type RateHistoryVendor struct {
	ID                     uint                `gorm:"primaryKey" json:"id"`
	SourceID               uint                `gorm:"not null;index" json:"source_id"`
	Source                 *MasterSource       `gorm:"foreignKey:SourceID;constraint:OnDelete:CASCADE" json:"source,omitempty"`
	WaterType              string              `gorm:"type:varchar(50);not null" json:"water_type"` // Drinking Water, Normal Water (Salt)
	CostType               string              `gorm:"type:varchar(20);not null" json:"cost_type"`  // Per_Load, Per_Liter
	RateValue              decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"rate_value"`
	VehicleCapacity        *int                `json:"vehicle_capacity"`
	EffectiveDate          time.Time           `gorm:"type:date;not null;index" json:"effective_date"`
	CalculatedCostPerLiter decimal.NullDecimal `gorm:"type:decimal(10,4)" json:"calculated_cost_per_liter"`
	CalculatedCostPerKL    decimal.NullDecimal `gorm:"column:calculated_cost_per_kl;type:decimal(10,4)" json:"calculated_cost_per_kl"`
	CreatedAt              time.Time           `json:"created_at"`
}

func (RateHistoryVendor) TableName() string { return "rate_history_vendors" }

// EffectiveOn implements engine.Versioned
func (r RateHistoryVendor) EffectiveOn() time.Time { return r.EffectiveDate }

// RecordID implements engine.Versioned
func (r RateHistoryVendor) RecordID() uint { return r.ID }

// RateHistoryPipeline prices corporation pipeline water per liter
type RateHistoryPipeline struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	SourceID      uint            `gorm:"not null;index" json:"source_id"`
	Source        *MasterSource   `gorm:"foreignKey:SourceID;constraint:OnDelete:CASCADE" json:"source,omitempty"`
	CostPerLiter  decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"cost_per_liter"`
	EffectiveDate time.Time       `gorm:"type:date;not null;index" json:"effective_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (RateHistoryPipeline) TableName() string { return "rate_history_pipeline" }

// EffectiveOn implements engine.Versioned
func (r RateHistoryPipeline) EffectiveOn() time.Time { return r.EffectiveDate }

// RecordID implements engine.Versioned
func (r RateHistoryPipeline) RecordID() uint { return r.ID }

// GeneralWaterRate is the append-only facility-wide rate pair used for
// consumption valuation
type GeneralWaterRate struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Date              time.Time       `gorm:"type:date;not null" json:"date"` // entered date
	NormalWaterRate   decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"normal_water_rate"`
	DrinkingWaterRate decimal.Decimal `gorm:"type:decimal(10,4);not null" json:"drinking_water_rate"`
	EffectiveDate     time.Time       `gorm:"type:date;not null;index" json:"effective_date"`
	CreatedByID       *uuid.UUID      `gorm:"type:uuid;column:created_by_id" json:"created_by_id"`
	CreatedAt         time.Time       `json:"created_at"`
}

func (GeneralWaterRate) TableName() string { return "general_water_rates" }

// EffectiveOn implements engine.Versioned
func (r GeneralWaterRate) EffectiveOn() time.Time { return r.EffectiveDate }

// RecordID implements engine.Versioned
func (r GeneralWaterRate) RecordID() uint { return r.ID }
