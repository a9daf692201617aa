package region

import (
	"github.com/harvestcover/seasonworker/internal/region/repository"
	"github.com/harvestcover/seasonworker/internal/region/service"
	"go.uber.org/fx"
)

var Module = fx.Module("region.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
