package upstream_fx

import (
	"go.uber.org/fx"

	"github.com/bizmatters/healthpath/internal/config"
	"github.com/bizmatters/healthpath/internal/logger"
	"github.com/bizmatters/healthpath/internal/metrics"
	"github.com/bizmatters/healthpath/internal/upstream"
)

var Module = fx.Provide(
	ProvideCompleter,
	metrics.NewGenerationMetrics)

// ProvideCompleter creates the model provider client selected in the config
func ProvideCompleter(cfg *config.Config, log *logger.Logger) (upstream.Completer, error) {
	settings, err := cfg.Upstream()
	if err != nil {
		return nil, err
	}

	completer, err := upstream.New(settings, log)
	if err != nil {
		return nil, err
	}

	log.Info("Initialized model provider",
		"provider", string(completer.Provider()),
		"model", completer.Model(),
		"configured", completer.Configured(),
	)
	if !completer.Configured() {
		log.Warn("Model provider API key not set; generation requests will fail until it is configured",
			"provider", string(completer.Provider()))
	}
	return completer, nil
}
