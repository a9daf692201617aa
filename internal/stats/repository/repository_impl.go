package repository

import (
	"context"

	"github.com/harvestcover/seasonworker/internal/account"
	"github.com/harvestcover/seasonworker/internal/stats/domain"
	workerdomain "github.com/harvestcover/seasonworker/internal/worker/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Overview(ctx context.Context, db *gorm.DB) (domain.Overview, error) {
	var overview domain.Overview

	counts := []struct {
		model any
		dest  *int64
	}{
		{&workerdomain.SeasonWorker{}, &overview.WorkerCount},
		{&workerdomain.Insurance{}, &overview.InsuranceCount},
	}
	for _, c := range counts {
		if err := db.WithContext(ctx).Model(c.model).Count(c.dest).Error; err != nil {
			return domain.Overview{}, err
		}
	}

	if err := db.WithContext(ctx).Table("employer").Count(&overview.EmployerCount).Error; err != nil {
		return domain.Overview{}, err
	}

	err := db.WithContext(ctx).
		Model(&workerdomain.Insurance{}).
		Where("cancellation_request_date IS NOT NULL AND cancellation_date IS NULL").
		Count(&overview.PendingCancels).Error
	if err != nil {
		return domain.Overview{}, err
	}

	err = db.WithContext(ctx).
		Model(&workerdomain.Insurance{}).
		Where("cancellation_date IS NOT NULL").
		Count(&overview.ApprovedCancels).Error
	if err != nil {
		return domain.Overview{}, err
	}

	err = db.WithContext(ctx).
		Model(&workerdomain.SeasonWorker{}).
		Where("account_status = ?", account.StatusActive).
		Count(&overview.ActiveWorkers).Error
	if err != nil {
		return domain.Overview{}, err
	}

	err = db.WithContext(ctx).
		Model(&workerdomain.SeasonWorker{}).
		Where("account_status IN ?", []account.Status{account.StatusCancelPending, account.StatusCancel}).
		Count(&overview.CancellingWorkers).Error
	if err != nil {
		return domain.Overview{}, err
	}

	return overview, nil
}

func (r *repo) WorkerBreakdown(ctx context.Context, db *gorm.DB) (domain.WorkerBreakdown, error) {
	breakdown := domain.WorkerBreakdown{}

	groups := []struct {
		column string
		dest   *[]domain.BreakdownEntry
	}{
		{"account_status", &breakdown.ByAccountStatus},
		{"gender", &breakdown.ByGender},
		{"register_status", &breakdown.ByRegisterStatus},
		{"country_code", &breakdown.ByCountry},
	}
	for _, g := range groups {
		entries, err := r.groupCount(ctx, db, g.column)
		if err != nil {
			return domain.WorkerBreakdown{}, err
		}
		*g.dest = entries
	}

	return breakdown, nil
}

func (r *repo) groupCount(ctx context.Context, db *gorm.DB, column string) ([]domain.BreakdownEntry, error) {
	var entries []domain.BreakdownEntry
	err := db.WithContext(ctx).
		Model(&workerdomain.SeasonWorker{}).
		Select(column+" AS key, COUNT(*) AS count").
		Group(column).
		Order("count DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
