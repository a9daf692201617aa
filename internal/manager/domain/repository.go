package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	ListPublic(ctx context.Context, db *gorm.DB) ([]PublicManager, error)
	FindPublicByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PublicManager, error)
	InsertPublic(ctx context.Context, db *gorm.DB, manager *PublicManager) error
	UpdatePublic(ctx context.Context, db *gorm.DB, manager *PublicManager) error

	ListGeneral(ctx context.Context, db *gorm.DB) ([]GeneralManager, error)
	FindGeneralByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*GeneralManager, error)
	InsertGeneral(ctx context.Context, db *gorm.DB, manager *GeneralManager) error
	UpdateGeneral(ctx context.Context, db *gorm.DB, manager *GeneralManager) error
}
