package repository

import (
	"context"
	"errors"

	"github.com/harvestcover/seasonworker/internal/region/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListRegions(ctx context.Context, db *gorm.DB) ([]domain.Region, error) {
	var regions []domain.Region
	err := db.WithContext(ctx).
		Model(&domain.Region{}).
		Order("region_name asc").
		Find(&regions).Error
	if err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *repo) ListLocalGovernments(ctx context.Context, db *gorm.DB) ([]domain.LocalGovernment, error) {
	var governments []domain.LocalGovernment
	err := db.WithContext(ctx).
		Model(&domain.LocalGovernment{}).
		Order("region_name asc, local_government_name asc").
		Find(&governments).Error
	if err != nil {
		return nil, err
	}
	return governments, nil
}

func (r *repo) FindLocalGovernment(ctx context.Context, db *gorm.DB, regionName, localGovernmentName string) (*domain.LocalGovernment, error) {
	var government domain.LocalGovernment
	err := db.WithContext(ctx).
		Where("region_name = ? AND local_government_name = ?", regionName, localGovernmentName).
		First(&government).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &government, nil
}
