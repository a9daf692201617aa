package ratelimit

import (
	"strings"

	"github.com/harvestcover/seasonworker/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("rate.limit",
	fx.Provide(NewLoginLimiter),
)

type portalWindowSource struct {
	holder *config.PortalConfigHolder
}

func (s portalWindowSource) LoginLimits() (int, int64) {
	cfg := s.holder.Get()
	return cfg.LoginMaxAttempts, cfg.LoginWindow.Milliseconds()
}

func NewLoginLimiter(cfg config.Config, holder *config.PortalConfigHolder, log *zap.Logger) Limiter {
	limits := portalWindowSource{holder: holder}

	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		log.Named("ratelimit").Info("no redis configured, using in-process login limiter")
		return NewMemoryLimiter(limits)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})
	log.Named("ratelimit").Info("using redis login limiter", zap.String("addr", addr))
	return NewRedisLimiter(client, limits)
}
