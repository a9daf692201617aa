package auth

import (
	"github.com/harvestcover/seasonworker/internal/auth/repository"
	"github.com/harvestcover/seasonworker/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
