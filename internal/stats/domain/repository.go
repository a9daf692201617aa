package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Overview(ctx context.Context, db *gorm.DB) (Overview, error)
	WorkerBreakdown(ctx context.Context, db *gorm.DB) (WorkerBreakdown, error)
}
