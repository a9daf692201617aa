package employer

import (
	"github.com/harvestcover/seasonworker/internal/employer/repository"
	"github.com/harvestcover/seasonworker/internal/employer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("employer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
