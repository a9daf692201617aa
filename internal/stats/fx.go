package stats

import (
	"github.com/harvestcover/seasonworker/internal/stats/repository"
	"github.com/harvestcover/seasonworker/internal/stats/service"
	"go.uber.org/fx"
)

var Module = fx.Module("stats.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
