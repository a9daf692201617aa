package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Region struct {
	ID         snowflake.ID `gorm:"column:region_id;primaryKey" json:"region_id"`
	RegionName string       `gorm:"column:region_name;not null;uniqueIndex" json:"region_name"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Region) TableName() string { return "region" }

// LocalGovernment binds an administrative district to the pair of managers
// responsible for its seasonal workers. The region and district names are
// denormalized because login scope lookups match on them directly.
type LocalGovernment struct {
	ID                  snowflake.ID `gorm:"column:local_government_id;primaryKey" json:"local_government_id"`
	RegionID            snowflake.ID `gorm:"column:region_id" json:"region_id"`
	RegionName          string       `gorm:"column:region_name;not null" json:"region_name"`
	LocalGovernmentName string       `gorm:"column:local_government_name;not null" json:"local_government_name"`
	ManagerPublicID     snowflake.ID `gorm:"column:manager_public_id" json:"manager_public_id"`
	ManagerGeneralID    snowflake.ID `gorm:"column:manager_general_id" json:"manager_general_id"`
	CreatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (LocalGovernment) TableName() string { return "local_government" }
