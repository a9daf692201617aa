package manager

import (
	"github.com/harvestcover/seasonworker/internal/manager/repository"
	"github.com/harvestcover/seasonworker/internal/manager/service"
	"go.uber.org/fx"
)

var Module = fx.Module("manager.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
