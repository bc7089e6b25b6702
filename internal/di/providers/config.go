// Package providers contains dependency injection providers for the grocery
// list server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/CyberCatD/youtube-to-list-app/internal/config"
	"github.com/CyberCatD/youtube-to-list-app/internal/logger"
)

// Args are the command-line arguments handed to config.Load.
type Args []string

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	args := do.MustInvoke[Args](i)
	return config.Load(args)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting grocery list server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"store_driver", cfg.Store.Driver,
		"data_path", cfg.Store.Path,
		"market", cfg.Retail.Market,
	)

	return log, nil
}
