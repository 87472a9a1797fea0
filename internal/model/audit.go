package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateRate     = "CREATE_RATE"
	ActionUpdateRate     = "UPDATE_RATE"
	ActionDeleteRate     = "DELETE_RATE"
	ActionCreateMaster   = "CREATE_MASTER"
	ActionUpdateMaster   = "UPDATE_MASTER"
	ActionDeleteMaster   = "DELETE_MASTER"
	ActionReorderMaster  = "REORDER_MASTER"
	ActionBulkDeleteRows = "BULK_DELETE"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated bot
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (id/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
