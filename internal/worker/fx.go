package worker

import (
	"github.com/harvestcover/seasonworker/internal/worker/repository"
	"github.com/harvestcover/seasonworker/internal/worker/service"
	"go.uber.org/fx"
)

var Module = fx.Module("worker.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
