// Package di provides dependency injection configuration for the grocery list
// server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/CyberCatD/youtube-to-list-app/internal/config"
	"github.com/CyberCatD/youtube-to-list-app/internal/di/providers"
	"github.com/CyberCatD/youtube-to-list-app/internal/grocery"
	"github.com/CyberCatD/youtube-to-list-app/internal/logger"
	"github.com/CyberCatD/youtube-to-list-app/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
// args are the command-line arguments without the program name.
func NewContainer(args []string) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, providers.Args(args))
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Consolidation engine
	do.Provide(injector, providers.ProvideConsolidator)

	// Business services
	do.Provide(injector, providers.ProvideRecipeService)
	do.Provide(injector, providers.ProvideGroceryListService)

	// Server
	do.Provide(injector, providers.ProvideRateLimiter)
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*grocery.Consolidator](injector); err != nil {
		return err
	}

	// Business services
	_ = do.MustInvoke[*service.RecipeService](injector)
	_ = do.MustInvoke[*service.GroceryListService](injector)

	// Server
	_ = do.MustInvoke[*providers.RateLimiterHandle](injector)
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
