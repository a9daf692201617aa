package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/harvestcover/seasonworker/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListEmployerFilter struct {
	OwnerName        string
	Phone            string
	ManagerGeneralID snowflake.ID
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, employer *Employer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Employer, error)
	List(ctx context.Context, db *gorm.DB, filter ListEmployerFilter, page pagination.Pagination) ([]Employer, int64, error)
}
