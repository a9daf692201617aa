package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/account"
)

// PublicManager administers publicly recruited seasonal workers. Workers
// link to it directly through manager_public_id.
type PublicManager struct {
	ID            snowflake.ID   `gorm:"column:manager_public_id;primaryKey" json:"manager_public_id"`
	AdminID       snowflake.ID   `gorm:"column:admin_id" json:"admin_id"`
	Pin           string         `gorm:"column:pin;not null" json:"-"`
	AccountStatus account.Status `gorm:"column:account_status;not null;default:Active" json:"account_status"`
	CreatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PublicManager) TableName() string { return "local_manager_public" }

// GeneralManager administers employer-recruited workers. Workers link to it
// indirectly through their employer's manager_general_id.
type GeneralManager struct {
	ID            snowflake.ID   `gorm:"column:manager_general_id;primaryKey" json:"manager_general_id"`
	AdminID       snowflake.ID   `gorm:"column:admin_id" json:"admin_id"`
	Pin           string         `gorm:"column:pin;not null" json:"-"`
	AccountStatus account.Status `gorm:"column:account_status;not null;default:Active" json:"account_status"`
	CreatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (GeneralManager) TableName() string { return "local_manager_general" }
