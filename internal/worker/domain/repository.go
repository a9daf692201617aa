package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/pkg/db/pagination"
	"gorm.io/gorm"
)

// ListWorkerFilter narrows the listing to one manager's cohort plus the
// operator's search terms. Exactly one of the manager IDs is set for
// manager-scoped reads; both stay zero for admin reads.
type ListWorkerFilter struct {
	ManagerPublicID  snowflake.ID
	ManagerGeneralID snowflake.ID

	Name        string
	Passport    string
	BirthYYMMDD string
	CountryCode string
	InsuranceID snowflake.ID
	StayStart   *time.Time
	StayEnd     *time.Time
}

// WorkerRow is a listing row flattened with the worker's employer and
// latest insurance.
type WorkerRow struct {
	SeasonWorker
	OwnerName               string     `gorm:"column:owner_name" json:"owner_name,omitempty"`
	OwnerPhone              string     `gorm:"column:owner_phone" json:"owner_phone,omitempty"`
	PolicyNumber            string     `gorm:"column:policy_number" json:"policy_number,omitempty"`
	InsuranceStartDate      *time.Time `gorm:"column:insurance_start_date" json:"insurance_start_date,omitempty"`
	InsuranceEndDate        *time.Time `gorm:"column:insurance_end_date" json:"insurance_end_date,omitempty"`
	CancellationRequestDate *time.Time `gorm:"column:cancellation_request_date" json:"cancellation_request_date,omitempty"`
	CancellationDate        *time.Time `gorm:"column:cancellation_date" json:"cancellation_date,omitempty"`
}

type Repository interface {
	InsertWorker(ctx context.Context, db *gorm.DB, worker *SeasonWorker) error
	InsertInsurance(ctx context.Context, db *gorm.DB, insurance *Insurance) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*SeasonWorker, error)
	List(ctx context.Context, db *gorm.DB, filter ListWorkerFilter, page pagination.Pagination) ([]WorkerRow, int64, error)
	ListInsurancesByWorker(ctx context.Context, db *gorm.DB, workerID snowflake.ID) ([]Insurance, error)
}
