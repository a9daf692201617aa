package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/account"
	workerdomain "github.com/harvestcover/seasonworker/internal/worker/domain"
	"github.com/harvestcover/seasonworker/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	FindWorker(ctx context.Context, db *gorm.DB, workerID snowflake.ID) (*workerdomain.SeasonWorker, error)
	FindInsurance(ctx context.Context, db *gorm.DB, insuranceID snowflake.ID) (*workerdomain.Insurance, error)

	UpdateWorkerStatus(ctx context.Context, db *gorm.DB, workerID snowflake.ID, status account.Status) error

	// CountOpenInsurances reports how many of the worker's insurance rows
	// still lack a cancellation date.
	CountOpenInsurances(ctx context.Context, db *gorm.DB, workerID snowflake.ID) (int64, error)

	// MarkWorkerRequested stamps the request date on every insurance row of
	// the worker that has no cancellation date yet.
	MarkWorkerRequested(ctx context.Context, db *gorm.DB, workerID snowflake.ID, at time.Time) error
	MarkInsuranceRequested(ctx context.Context, db *gorm.DB, insuranceID snowflake.ID, at time.Time) error
	MarkInsuranceCancelled(ctx context.Context, db *gorm.DB, insuranceID snowflake.ID, at time.Time) error
	ClearInsuranceRequest(ctx context.Context, db *gorm.DB, insuranceID snowflake.ID) error

	Summary(ctx context.Context, db *gorm.DB) (Summary, error)
	ListApproved(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]Row, error)
	ListPending(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]Row, error)
}
