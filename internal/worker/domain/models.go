package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/account"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// RegisterStatus records the recruitment channel a worker entered through.
type RegisterStatus string

const (
	RegisterImmigration RegisterStatus = "IMMIGRATION"
	RegisterMOU         RegisterStatus = "MOU"
	RegisterMarriage    RegisterStatus = "MARRIAGE"
	RegisterPublic      RegisterStatus = "PUBLIC"
	RegisterOther       RegisterStatus = "OTHER"
	RegisterNone        RegisterStatus = "NONE"
)

func (r RegisterStatus) Valid() bool {
	switch r {
	case RegisterImmigration, RegisterMOU, RegisterMarriage, RegisterPublic, RegisterOther, RegisterNone:
		return true
	}
	return false
}

type SeasonWorker struct {
	ID                snowflake.ID   `gorm:"column:worker_id;primaryKey" json:"worker_id"`
	Pin               string         `gorm:"column:pin;not null" json:"-"`
	Name              string         `gorm:"column:name;not null" json:"name"`
	PassportID        string         `gorm:"column:passport_id;not null;index" json:"passport_id"`
	BirthDate         string         `gorm:"column:birth_date;not null" json:"birth_date"`
	Gender            Gender         `gorm:"column:gender;not null" json:"gender"`
	RegisterStatus    RegisterStatus `gorm:"column:register_status;not null" json:"register_status"`
	AccountStatus     account.Status `gorm:"column:account_status;not null;default:ActivePending" json:"account_status"`
	CountryCode       string         `gorm:"column:country_code" json:"country_code,omitempty"`
	BankAccountNo     string         `gorm:"column:bank_account_no" json:"bank_account_no,omitempty"`
	BankName          string         `gorm:"column:bank_name" json:"bank_name,omitempty"`
	ManagerPublicID   snowflake.ID   `gorm:"column:manager_public_id;index" json:"manager_public_id"`
	EmployerID        snowflake.ID   `gorm:"column:employer_id;index" json:"employer_id"`
	LocalGovernmentID snowflake.ID   `gorm:"column:local_government_id" json:"local_government_id"`
	CreatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (SeasonWorker) TableName() string { return "season_worker" }

// Insurance covers one enrollment period for a worker. The cancellation
// timestamps drive the account lifecycle: a set request date marks a
// pending cancellation, a set cancellation date a finalized one.
type Insurance struct {
	ID                      snowflake.ID `gorm:"column:insurance_id;primaryKey" json:"insurance_id"`
	PolicyNumber            string       `gorm:"column:policy_number" json:"policy_number,omitempty"`
	InsuranceStartDate      time.Time    `gorm:"column:insurance_start_date;not null" json:"insurance_start_date"`
	InsuranceEndDate        time.Time    `gorm:"column:insurance_end_date;not null" json:"insurance_end_date"`
	CancellationRequestDate *time.Time   `gorm:"column:cancellation_request_date" json:"cancellation_request_date,omitempty"`
	CancellationDate        *time.Time   `gorm:"column:cancellation_date" json:"cancellation_date,omitempty"`
	WorkerID                snowflake.ID `gorm:"column:worker_id;not null;index" json:"worker_id"`
	CreatedAt               time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt               time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Insurance) TableName() string { return "insurance" }
