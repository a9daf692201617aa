package cancellation

import (
	"github.com/harvestcover/seasonworker/internal/cancellation/repository"
	"github.com/harvestcover/seasonworker/internal/cancellation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("cancellation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
