package model

import (
	"time"

	"github.com/google/uuid"
)

// YieldType enum constants
const (
	YieldTypeBorewell = "Borewell"
	YieldTypeWell     = "Well"
)

// YieldLocation is a borewell or well whose output is metered (or, for
// manual-yield locations, entered directly in liters)
type YieldLocation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	LocationName  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"location_name"`
	YieldType     string    `gorm:"type:varchar(20);not null" json:"yield_type"` // Borewell, Well
	IsManualYield bool      `gorm:"default:false" json:"is_manual_yield"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	SortOrder     int       `gorm:"default:0" json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (YieldLocation) TableName() string { return "yield_locations" }

// YieldEntry records one day's meter reading for a yield location.
// Readings are in KL; yield_liters is the derived (or manual) volume in liters.
type YieldEntry struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Date            time.Time      `gorm:"type:date;not null;index" json:"date"`
	LocationID      uint           `gorm:"not null;index" json:"location_id"`
	Location        *YieldLocation `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"location,omitempty"`
	CurrentReading  int            `gorm:"not null" json:"current_reading"`
	PreviousReading int            `gorm:"default:0" json:"previous_reading"`
	YieldLiters     int            `gorm:"default:0" json:"yield_liters"`
	Comments        string         `gorm:"type:varchar(300)" json:"comments"`
	CreatedByID     *uuid.UUID     `gorm:"type:uuid" json:"created_by_id"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (YieldEntry) TableName() string { return "yield_entries" }
