package database

import (
	"log"

	"watertracker/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.AuditLog{},
		&model.MasterLocation{},
		&model.MasterSource{},
		&model.MasterInternalVehicle{},
		&model.MasterVendorVehicle{},
		&model.RateHistoryInternalVehicle{},
		&model.RateHistoryVendor{},
		&model.RateHistoryPipeline{},
		&model.GeneralWaterRate{},
		&model.WaterEntry{},
		&model.YieldLocation{},
		&model.YieldEntry{},
		&model.ConsumptionCategory{},
		&model.ConsumptionLocation{},
		&model.ConsumptionEntry{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
