package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/worker/domain"
	"github.com/harvestcover/seasonworker/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertWorker(ctx context.Context, db *gorm.DB, worker *domain.SeasonWorker) error {
	return db.WithContext(ctx).Create(worker).Error
}

func (r *repo) InsertInsurance(ctx context.Context, db *gorm.DB, insurance *domain.Insurance) error {
	return db.WithContext(ctx).Create(insurance).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.SeasonWorker, error) {
	var worker domain.SeasonWorker
	err := db.WithContext(ctx).
		Where("worker_id = ?", id).
		First(&worker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &worker, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListWorkerFilter, page pagination.Pagination) ([]domain.WorkerRow, int64, error) {
	stmt := r.listStmt(ctx, db, filter)

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []domain.WorkerRow
	err := page.Apply(stmt).
		Select(`w.*,
			e.owner_name AS owner_name,
			e.phone AS owner_phone,
			i.policy_number AS policy_number,
			i.insurance_start_date AS insurance_start_date,
			i.insurance_end_date AS insurance_end_date,
			i.cancellation_request_date AS cancellation_request_date,
			i.cancellation_date AS cancellation_date`).
		Order("w.worker_id desc").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repo) listStmt(ctx context.Context, db *gorm.DB, filter domain.ListWorkerFilter) *gorm.DB {
	// One row per worker: join only the newest insurance.
	stmt := db.WithContext(ctx).
		Table("season_worker AS w").
		Joins("LEFT JOIN employer e ON e.employer_id = w.employer_id").
		Joins(`LEFT JOIN insurance i ON i.worker_id = w.worker_id
			AND i.insurance_id = (SELECT MAX(i2.insurance_id) FROM insurance i2 WHERE i2.worker_id = w.worker_id)`)

	if filter.ManagerPublicID != 0 {
		stmt = stmt.Where("w.manager_public_id = ?", filter.ManagerPublicID)
	}
	if filter.ManagerGeneralID != 0 {
		stmt = stmt.Where("e.manager_general_id = ?", filter.ManagerGeneralID)
	}
	if filter.Name != "" {
		stmt = stmt.Where("w.name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Passport != "" {
		stmt = stmt.Where("w.passport_id LIKE ?", "%"+filter.Passport+"%")
	}
	if filter.BirthYYMMDD != "" {
		stmt = stmt.Where("substr(replace(w.birth_date, '-', ''), 3) = ?", filter.BirthYYMMDD)
	}
	if filter.CountryCode != "" {
		stmt = stmt.Where("w.country_code = ?", filter.CountryCode)
	}
	if filter.InsuranceID != 0 {
		stmt = stmt.Where("i.insurance_id = ?", filter.InsuranceID)
	}
	if filter.StayStart != nil && filter.StayEnd != nil {
		stmt = stmt.Where("i.insurance_start_date >= ? AND i.insurance_end_date <= ?", *filter.StayStart, *filter.StayEnd)
	}
	return stmt
}

func (r *repo) ListInsurancesByWorker(ctx context.Context, db *gorm.DB, workerID snowflake.ID) ([]domain.Insurance, error) {
	var insurances []domain.Insurance
	err := db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("insurance_id desc").
		Find(&insurances).Error
	if err != nil {
		return nil, err
	}
	return insurances, nil
}
