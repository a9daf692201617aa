package domain

import (
	"context"

	"github.com/harvestcover/seasonworker/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListAuditFilter struct {
	Resource   string
	ResourceID string
	Action     string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, log *AuditLog) error
	List(ctx context.Context, db *gorm.DB, filter ListAuditFilter, page pagination.Pagination) ([]AuditLog, int64, error)
}
