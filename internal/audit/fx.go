package audit

import (
	"github.com/harvestcover/seasonworker/internal/audit/repository"
	"github.com/harvestcover/seasonworker/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
