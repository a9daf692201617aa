package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/internal/manager/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListPublic(ctx context.Context, db *gorm.DB) ([]domain.PublicManager, error) {
	var managers []domain.PublicManager
	err := db.WithContext(ctx).
		Model(&domain.PublicManager{}).
		Order("manager_public_id desc").
		Find(&managers).Error
	if err != nil {
		return nil, err
	}
	return managers, nil
}

func (r *repo) FindPublicByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.PublicManager, error) {
	var manager domain.PublicManager
	err := db.WithContext(ctx).
		Where("manager_public_id = ?", id).
		First(&manager).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &manager, nil
}

func (r *repo) InsertPublic(ctx context.Context, db *gorm.DB, manager *domain.PublicManager) error {
	return db.WithContext(ctx).Create(manager).Error
}

func (r *repo) UpdatePublic(ctx context.Context, db *gorm.DB, manager *domain.PublicManager) error {
	return db.WithContext(ctx).
		Model(&domain.PublicManager{}).
		Where("manager_public_id = ?", manager.ID).
		Updates(map[string]any{
			"pin":            manager.Pin,
			"account_status": manager.AccountStatus,
			"updated_at":     manager.UpdatedAt,
		}).Error
}

func (r *repo) ListGeneral(ctx context.Context, db *gorm.DB) ([]domain.GeneralManager, error) {
	var managers []domain.GeneralManager
	err := db.WithContext(ctx).
		Model(&domain.GeneralManager{}).
		Order("manager_general_id desc").
		Find(&managers).Error
	if err != nil {
		return nil, err
	}
	return managers, nil
}

func (r *repo) FindGeneralByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.GeneralManager, error) {
	var manager domain.GeneralManager
	err := db.WithContext(ctx).
		Where("manager_general_id = ?", id).
		First(&manager).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &manager, nil
}

func (r *repo) InsertGeneral(ctx context.Context, db *gorm.DB, manager *domain.GeneralManager) error {
	return db.WithContext(ctx).Create(manager).Error
}

func (r *repo) UpdateGeneral(ctx context.Context, db *gorm.DB, manager *domain.GeneralManager) error {
	return db.WithContext(ctx).
		Model(&domain.GeneralManager{}).
		Where("manager_general_id = ?", manager.ID).
		Updates(map[string]any{
			"pin":            manager.Pin,
			"account_status": manager.AccountStatus,
			"updated_at":     manager.UpdatedAt,
		}).Error
}
