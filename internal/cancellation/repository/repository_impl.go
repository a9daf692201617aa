package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/account"
	"github.com/harvestcover/seasonworker/internal/cancellation/domain"
	workerdomain "github.com/harvestcover/seasonworker/internal/worker/domain"
	"github.com/harvestcover/seasonworker/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindWorker(ctx context.Context, db *gorm.DB, workerID snowflake.ID) (*workerdomain.SeasonWorker, error) {
	var worker workerdomain.SeasonWorker
	err := db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		First(&worker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &worker, nil
}

func (r *repo) FindInsurance(ctx context.Context, db *gorm.DB, insuranceID snowflake.ID) (*workerdomain.Insurance, error) {
	var insurance workerdomain.Insurance
	err := db.WithContext(ctx).
		Where("insurance_id = ?", insuranceID).
		First(&insurance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &insurance, nil
}

func (r *repo) UpdateWorkerStatus(ctx context.Context, db *gorm.DB, workerID snowflake.ID, status account.Status) error {
	return db.WithContext(ctx).
		Model(&workerdomain.SeasonWorker{}).
		Where("worker_id = ?", workerID).
		Updates(map[string]any{
			"account_status": status,
			"updated_at":     time.Now().UTC(),
		}).Error
}

func (r *repo) CountOpenInsurances(ctx context.Context, db *gorm.DB, workerID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&workerdomain.Insurance{}).
		Where("worker_id = ? AND cancellation_date IS NULL", workerID).
		Count(&count).Error
	return count, err
}

func (r *repo) MarkWorkerRequested(ctx context.Context, db *gorm.DB, workerID snowflake.ID, at time.Time) error {
	return db.WithContext(ctx).
		Model(&workerdomain.Insurance{}).
		Where("worker_id = ? AND cancellation_date IS NULL", workerID).
		Updates(map[string]any{
			"cancellation_request_date": at,
			"updated_at":                at,
		}).Error
}

func (r *repo) MarkInsuranceRequested(ctx context.Context, db *gorm.DB, insuranceID snowflake.ID, at time.Time) error {
	return db.WithContext(ctx).
		Model(&workerdomain.Insurance{}).
		Where("insurance_id = ?", insuranceID).
		Updates(map[string]any{
			"cancellation_request_date": at,
			"updated_at":                at,
		}).Error
}

func (r *repo) MarkInsuranceCancelled(ctx context.Context, db *gorm.DB, insuranceID snowflake.ID, at time.Time) error {
	return db.WithContext(ctx).
		Model(&workerdomain.Insurance{}).
		Where("insurance_id = ?", insuranceID).
		Updates(map[string]any{
			"cancellation_date": at,
			"updated_at":        at,
		}).Error
}

func (r *repo) ClearInsuranceRequest(ctx context.Context, db *gorm.DB, insuranceID snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&workerdomain.Insurance{}).
		Where("insurance_id = ?", insuranceID).
		Updates(map[string]any{
			"cancellation_request_date": gorm.Expr("NULL"),
			"updated_at":                time.Now().UTC(),
		}).Error
}

func (r *repo) Summary(ctx context.Context, db *gorm.DB) (domain.Summary, error) {
	var summary domain.Summary
	err := db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(CASE WHEN cancellation_date IS NOT NULL THEN 1 ELSE 0 END), 0) AS approved_count,
			COALESCE(SUM(CASE WHEN cancellation_request_date IS NOT NULL AND cancellation_date IS NULL THEN 1 ELSE 0 END), 0) AS pending_count,
			COALESCE(SUM(CASE WHEN cancellation_request_date IS NOT NULL THEN 1 ELSE 0 END), 0) AS total_count
		FROM insurance
	`).Scan(&summary).Error
	if err != nil {
		return domain.Summary{}, err
	}
	return summary, nil
}

func (r *repo) ListApproved(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]domain.Row, error) {
	return r.listRows(ctx, db, page,
		"i.cancellation_date IS NOT NULL",
		"i.cancellation_date DESC",
	)
}

func (r *repo) ListPending(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]domain.Row, error) {
	return r.listRows(ctx, db, page,
		"i.cancellation_request_date IS NOT NULL AND i.cancellation_date IS NULL",
		"i.cancellation_request_date DESC",
	)
}

type rowScan struct {
	InsuranceID             snowflake.ID
	PolicyNumber            string
	InsuranceStartDate      time.Time
	InsuranceEndDate        time.Time
	CancellationRequestDate *time.Time
	CancellationDate        *time.Time
	WorkerID                snowflake.ID
	WorkerName              string
	PassportID              string
	AccountStatus           string
	OwnerName               string
}

func (r *repo) listRows(ctx context.Context, db *gorm.DB, page pagination.Pagination, condition, order string) ([]domain.Row, error) {
	var scans []rowScan
	err := page.Apply(db.WithContext(ctx).
		Table("insurance AS i").
		Select(`i.insurance_id, i.policy_number, i.insurance_start_date, i.insurance_end_date,
			i.cancellation_request_date, i.cancellation_date,
			w.worker_id, w.name AS worker_name, w.passport_id, w.account_status,
			e.owner_name AS owner_name`).
		Joins("LEFT JOIN season_worker w ON w.worker_id = i.worker_id").
		Joins("LEFT JOIN employer e ON e.employer_id = w.employer_id").
		Where(condition)).
		Order(order).
		Scan(&scans).Error
	if err != nil {
		return nil, err
	}

	rows := make([]domain.Row, 0, len(scans))
	for _, scan := range scans {
		rows = append(rows, domain.Row{
			InsuranceID:             scan.InsuranceID.String(),
			PolicyNumber:            scan.PolicyNumber,
			InsuranceStartDate:      scan.InsuranceStartDate,
			InsuranceEndDate:        scan.InsuranceEndDate,
			CancellationRequestDate: scan.CancellationRequestDate,
			CancellationDate:        scan.CancellationDate,
			WorkerID:                scan.WorkerID.String(),
			WorkerName:              scan.WorkerName,
			PassportID:              scan.PassportID,
			AccountStatus:           scan.AccountStatus,
			OwnerName:               scan.OwnerName,
		})
	}
	return rows, nil
}
