package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/account"
)

// Employer recruits general-type seasonal workers. The manager links
// determine which local government the employer (and its workers)
// belongs to.
type Employer struct {
	ID                snowflake.ID   `gorm:"column:employer_id;primaryKey" json:"employer_id"`
	Pin               string         `gorm:"column:pin;not null" json:"-"`
	OwnerName         string         `gorm:"column:owner_name;not null" json:"owner_name"`
	BusinessName      string         `gorm:"column:business_name" json:"business_name,omitempty"`
	Phone             string         `gorm:"column:phone;not null" json:"phone"`
	AccountStatus     account.Status `gorm:"column:account_status;not null;default:Active" json:"account_status"`
	ManagerPublicID   snowflake.ID   `gorm:"column:manager_public_id" json:"manager_public_id"`
	ManagerGeneralID  snowflake.ID   `gorm:"column:manager_general_id;index" json:"manager_general_id"`
	LocalGovernmentID snowflake.ID   `gorm:"column:local_government_id" json:"local_government_id"`
	CreatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Employer) TableName() string { return "employer" }
