package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/employer/domain"
	"github.com/harvestcover/seasonworker/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, employer *domain.Employer) error {
	return db.WithContext(ctx).Create(employer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Employer, error) {
	var employer domain.Employer
	err := db.WithContext(ctx).
		Where("employer_id = ?", id).
		First(&employer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListEmployerFilter, page pagination.Pagination) ([]domain.Employer, int64, error) {
	stmt := db.WithContext(ctx).Model(&domain.Employer{})
	if filter.OwnerName != "" {
		stmt = stmt.Where("owner_name LIKE ?", "%"+filter.OwnerName+"%")
	}
	if filter.Phone != "" {
		stmt = stmt.Where("phone = ?", filter.Phone)
	}
	if filter.ManagerGeneralID != 0 {
		stmt = stmt.Where("manager_general_id = ?", filter.ManagerGeneralID)
	}

	var total int64
	if err := stmt.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employers []domain.Employer
	err := page.Apply(stmt).
		Order("employer_id desc").
		Find(&employers).Error
	if err != nil {
		return nil, 0, err
	}
	return employers, total, nil
}
