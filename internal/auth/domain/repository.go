package domain

import (
	"context"

	employerdomain "github.com/harvestcover/seasonworker/internal/employer/domain"
	managerdomain "github.com/harvestcover/seasonworker/internal/manager/domain"
	workerdomain "github.com/harvestcover/seasonworker/internal/worker/domain"
	"gorm.io/gorm"
)

// Repository resolves credentials against the scope joins. Every lookup
// matches region, local government and PIN in one query so a mismatch in
// any component is indistinguishable from a missing account.
type Repository interface {
	FindAdminByPin(ctx context.Context, db *gorm.DB, pin string) (*Admin, error)

	FindPublicManager(ctx context.Context, db *gorm.DB, region, localGovernment, pin string) (*managerdomain.PublicManager, error)
	FindGeneralManager(ctx context.Context, db *gorm.DB, region, localGovernment, pin string) (*managerdomain.GeneralManager, error)

	// Workers are scoped through their public manager's local government.
	FindWorkerByScope(ctx context.Context, db *gorm.DB, region, localGovernment, pin string) (*workerdomain.SeasonWorker, error)
	FindWorkerByIdentity(ctx context.Context, db *gorm.DB, region, localGovernment, pin, name, passportNo string) (*workerdomain.SeasonWorker, error)

	// Employers are scoped through their general manager's local government.
	FindEmployerByScope(ctx context.Context, db *gorm.DB, region, localGovernment, pin string) (*employerdomain.Employer, error)
	FindEmployerByIdentity(ctx context.Context, db *gorm.DB, region, localGovernment, pin, name, phone string) (*employerdomain.Employer, error)
}
