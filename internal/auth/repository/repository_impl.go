package repository

import (
	"context"
	"errors"

	"github.com/harvestcover/seasonworker/internal/auth/domain"
	employerdomain "github.com/harvestcover/seasonworker/internal/employer/domain"
	managerdomain "github.com/harvestcover/seasonworker/internal/manager/domain"
	workerdomain "github.com/harvestcover/seasonworker/internal/worker/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindAdminByPin(ctx context.Context, db *gorm.DB, pin string) (*domain.Admin, error) {
	var admin domain.Admin
	err := db.WithContext(ctx).
		Where("pin = ?", pin).
		First(&admin).Error
	return nilOnNotFound(&admin, err)
}

func (r *repo) FindPublicManager(ctx context.Context, db *gorm.DB, region, localGovernment, pin string) (*managerdomain.PublicManager, error) {
	var manager managerdomain.PublicManager
	err := db.WithContext(ctx).
		Table("local_manager_public AS m").
		Select("m.*").
		Joins("INNER JOIN local_government lg ON lg.manager_public_id = m.manager_public_id").
		Where("lg.region_name = ? AND lg.local_government_name = ? AND m.pin = ?", region, localGovernment, pin).
		First(&manager).Error
	return nilOnNotFound(&manager, err)
}

func (r *repo) FindGeneralManager(ctx context.Context, db *gorm.DB, region, localGovernment, pin string) (*managerdomain.GeneralManager, error) {
	var manager managerdomain.GeneralManager
	err := db.WithContext(ctx).
		Table("local_manager_general AS m").
		Select("m.*").
		Joins("INNER JOIN local_government lg ON lg.manager_general_id = m.manager_general_id").
		Where("lg.region_name = ? AND lg.local_government_name = ? AND m.pin = ?", region, localGovernment, pin).
		First(&manager).Error
	return nilOnNotFound(&manager, err)
}

func (r *repo) FindWorkerByScope(ctx context.Context, db *gorm.DB, region, localGovernment, pin string) (*workerdomain.SeasonWorker, error) {
	var worker workerdomain.SeasonWorker
	err := workerScopeStmt(ctx, db, region, localGovernment, pin).
		First(&worker).Error
	return nilOnNotFound(&worker, err)
}

func (r *repo) FindWorkerByIdentity(ctx context.Context, db *gorm.DB, region, localGovernment, pin, name, passportNo string) (*workerdomain.SeasonWorker, error) {
	var worker workerdomain.SeasonWorker
	err := workerScopeStmt(ctx, db, region, localGovernment, pin).
		Where("w.name = ? AND w.passport_id = ?", name, passportNo).
		First(&worker).Error
	return nilOnNotFound(&worker, err)
}

func workerScopeStmt(ctx context.Context, db *gorm.DB, region, localGovernment, pin string) *gorm.DB {
	return db.WithContext(ctx).
		Table("season_worker AS w").
		Select("w.*").
		Joins("INNER JOIN local_manager_public m ON m.manager_public_id = w.manager_public_id").
		Joins("INNER JOIN local_government lg ON lg.manager_public_id = m.manager_public_id").
		Where("lg.region_name = ? AND lg.local_government_name = ? AND w.pin = ?", region, localGovernment, pin)
}

func (r *repo) FindEmployerByScope(ctx context.Context, db *gorm.DB, region, localGovernment, pin string) (*employerdomain.Employer, error) {
	var employer employerdomain.Employer
	err := employerScopeStmt(ctx, db, region, localGovernment, pin).
		First(&employer).Error
	return nilOnNotFound(&employer, err)
}

func (r *repo) FindEmployerByIdentity(ctx context.Context, db *gorm.DB, region, localGovernment, pin, name, phone string) (*employerdomain.Employer, error) {
	var employer employerdomain.Employer
	err := employerScopeStmt(ctx, db, region, localGovernment, pin).
		Where("e.owner_name = ? AND e.phone = ?", name, phone).
		First(&employer).Error
	return nilOnNotFound(&employer, err)
}

func employerScopeStmt(ctx context.Context, db *gorm.DB, region, localGovernment, pin string) *gorm.DB {
	return db.WithContext(ctx).
		Table("employer AS e").
		Select("e.*").
		Joins("INNER JOIN local_manager_general m ON m.manager_general_id = e.manager_general_id").
		Joins("INNER JOIN local_government lg ON lg.manager_general_id = m.manager_general_id").
		Where("lg.region_name = ? AND lg.local_government_name = ? AND e.pin = ?", region, localGovernment, pin)
}

func nilOnNotFound[T any](value *T, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return value, nil
}
