package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PortalConfig holds operational tunables that operators may adjust without a
// restart: pagination caps, database statement timeout and the login throttle.
type PortalConfig struct {
	DefaultPageSize  int           `mapstructure:"defaultPageSize"`
	MaxPageSize      int           `mapstructure:"maxPageSize"`
	StatementTimeout time.Duration `mapstructure:"statementTimeout"`
	LoginMaxAttempts int           `mapstructure:"loginMaxAttempts"`
	LoginWindow      time.Duration `mapstructure:"loginWindow"`
}

func DefaultPortalConfig() PortalConfig {
	return PortalConfig{
		DefaultPageSize:  20,
		MaxPageSize:      100,
		StatementTimeout: 5 * time.Second,
		LoginMaxAttempts: 10,
		LoginWindow:      time.Minute,
	}
}

// PortalConfigHolder exposes the current PortalConfig and hot-reloads it when
// the backing file changes.
type PortalConfigHolder struct {
	current atomic.Value // holds PortalConfig
}

func NewPortalConfigHolder() (*PortalConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("portal")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/seasonworker")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SEASONWORKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultPortalConfig()
	v.SetDefault("portal.defaultPageSize", defaults.DefaultPageSize)
	v.SetDefault("portal.maxPageSize", defaults.MaxPageSize)
	v.SetDefault("portal.statementTimeout", defaults.StatementTimeout)
	v.SetDefault("portal.loginMaxAttempts", defaults.LoginMaxAttempts)
	v.SetDefault("portal.loginWindow", defaults.LoginWindow)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg PortalConfig
	if err := v.UnmarshalKey("portal", &cfg); err != nil {
		return nil, err
	}
	if err := validatePortalConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PortalConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PortalConfig
		if err := v.UnmarshalKey("portal", &updated); err != nil {
			log.Printf("[portal-config] reload failed: %v", err)
			return
		}
		if err := validatePortalConfig(updated); err != nil {
			log.Printf("[portal-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[portal-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticPortalConfigHolder wraps a fixed config with no file watching.
// Meant for tests and one-shot tooling.
func NewStaticPortalConfigHolder(cfg PortalConfig) (*PortalConfigHolder, error) {
	if err := validatePortalConfig(cfg); err != nil {
		return nil, err
	}
	holder := &PortalConfigHolder{}
	holder.current.Store(cfg)
	return holder, nil
}

func (h *PortalConfigHolder) Get() PortalConfig {
	return h.current.Load().(PortalConfig)
}

func validatePortalConfig(cfg PortalConfig) error {
	if cfg.DefaultPageSize <= 0 || cfg.MaxPageSize < cfg.DefaultPageSize {
		return errors.New("portal page size bounds are invalid")
	}
	if cfg.StatementTimeout <= 0 {
		return errors.New("portal.statementTimeout must be positive")
	}
	if cfg.LoginMaxAttempts <= 0 || cfg.LoginWindow <= 0 {
		return errors.New("portal login throttle settings are invalid")
	}
	return nil
}
