package migration

import (
	"strings"

	auditdomain "github.com/harvestcover/seasonworker/internal/audit/domain"
	authdomain "github.com/harvestcover/seasonworker/internal/auth/domain"
	"github.com/harvestcover/seasonworker/internal/config"
	employerdomain "github.com/harvestcover/seasonworker/internal/employer/domain"
	managerdomain "github.com/harvestcover/seasonworker/internal/manager/domain"
	regiondomain "github.com/harvestcover/seasonworker/internal/region/domain"
	"github.com/harvestcover/seasonworker/internal/seed"
	workerdomain "github.com/harvestcover/seasonworker/internal/worker/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if strings.EqualFold(cfg.DBType, "postgres") {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// Non-postgres dialects (sqlite in local dev) build the schema
			// from the models instead of the SQL migrations.
			if err := AutoMigrate(conn); err != nil {
				return err
			}
		}

		if cfg.SeedBaseData {
			return seed.EnsureBaseData(conn)
		}
		return nil
	}),
)

func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&regiondomain.Region{},
		&regiondomain.LocalGovernment{},
		&authdomain.Admin{},
		&managerdomain.PublicManager{},
		&managerdomain.GeneralManager{},
		&employerdomain.Employer{},
		&workerdomain.SeasonWorker{},
		&workerdomain.Insurance{},
		&auditdomain.AuditLog{},
	)
}
