package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	ListRegions(ctx context.Context, db *gorm.DB) ([]Region, error)
	ListLocalGovernments(ctx context.Context, db *gorm.DB) ([]LocalGovernment, error)
	FindLocalGovernment(ctx context.Context, db *gorm.DB, regionName, localGovernmentName string) (*LocalGovernment, error)
}
