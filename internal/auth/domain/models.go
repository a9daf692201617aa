package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Admin is the portal superuser. Admins authenticate with a PIN alone and
// are the only role allowed to approve or reject cancellations.
type Admin struct {
	ID        snowflake.ID `gorm:"column:admin_id;primaryKey" json:"admin_id"`
	Name      string       `gorm:"column:name;not null" json:"name"`
	Pin       string       `gorm:"column:pin;not null" json:"-"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Admin) TableName() string { return "admin" }
