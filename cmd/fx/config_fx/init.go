package config_fx

import (
	"os"

	"go.uber.org/fx"

	"github.com/bizmatters/healthpath/internal/config"
	"github.com/bizmatters/healthpath/internal/logger"
)

var Module = fx.Provide(
	ProvideConfig,
	ProvideLogger)

// ProvideConfig loads and validates the configuration. HEALTHPATH_CONFIG
// points at the YAML file.
func ProvideConfig() (*config.Config, error) {
	path := os.Getenv("HEALTHPATH_CONFIG")
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProvideLogger builds the process logger and flushes it on stop
func ProvideLogger(lc fx.Lifecycle, cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(cfg.Logging.Mode)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(log.Sync))
	return log, nil
}
