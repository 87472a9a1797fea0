package model

import (
	"time"

	"github.com/google/uuid"
)

// ConsumptionType enum constants
const (
	ConsumptionTypeNormal   = "Normal"
	ConsumptionTypeDrinking = "Drinking"
)

// ConsumptionCategory groups consumption locations for reporting
// (hostel blocks, kitchens, etc.)
type ConsumptionCategory struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
	StudentCount    int       `gorm:"default:0" json:"student_count"`
	IsExcluded      bool      `gorm:"default:false" json:"is_excluded"`
	ExcludeValue    int       `gorm:"default:0" json:"exclude_value"`
	SecondCount     int       `gorm:"default:0" json:"second_count"`
	HasStudentCount bool      `gorm:"default:true" json:"has_student_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (ConsumptionCategory) TableName() string { return "consumption_categories" }

// ConsumptionLocation is a metered consumption point (normal or drinking line)
type ConsumptionLocation struct {
	ID              uint                 `gorm:"primaryKey" json:"id"`
	LocationName    string               `gorm:"type:varchar(100);not null;uniqueIndex:idx_consumption_loc_name_type" json:"location_name"`
	ConsumptionType string               `gorm:"type:varchar(20);not null;uniqueIndex:idx_consumption_loc_name_type" json:"consumption_type"` // Normal, Drinking
	CategoryID      *uint                `gorm:"index" json:"category_id"`
	Category        *ConsumptionCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	IsActive        bool                 `gorm:"default:true" json:"is_active"`
	SortOrder       int                  `gorm:"default:0" json:"sort_order"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func (ConsumptionLocation) TableName() string { return "consumption_locations" }

// ConsumptionEntry records one day's meter reading for a consumption location.
// Readings are in KL; consumption_liters is the derived volume in liters.
type ConsumptionEntry struct {
	ID                uint                 `gorm:"primaryKey" json:"id"`
	Date              time.Time            `gorm:"type:date;not null;index" json:"date"`
	LocationID        uint                 `gorm:"not null;index" json:"location_id"`
	Location          *ConsumptionLocation `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"location,omitempty"`
	CurrentReading    int                  `gorm:"not null" json:"current_reading"`
	PreviousReading   int                  `gorm:"default:0" json:"previous_reading"`
	ConsumptionLiters int                  `gorm:"default:0" json:"consumption_liters"`
	Comments          string               `gorm:"type:varchar(300)" json:"comments"`
	CreatedByID       *uuid.UUID           `gorm:"type:uuid" json:"created_by_id"`
	CreatedAt         time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

func (ConsumptionEntry) TableName() string { return "consumption_entries" }
