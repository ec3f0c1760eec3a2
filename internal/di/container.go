// Package di provides dependency injection configuration for the Screend server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/screendapp/screend-server/internal/config"
	"github.com/screendapp/screend-server/internal/di/providers"
	"github.com/screendapp/screend-server/internal/logger"
	"github.com/screendapp/screend-server/internal/stats"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSSEManager)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Metadata layer
	do.Provide(injector, providers.ProvideTMDBClient)

	// Business services
	do.Provide(injector, providers.ProvideStatsEngine)
	do.Provide(injector, providers.ProvideDashboardService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*providers.TMDBClientHandle](injector)

	// Business services
	_ = do.MustInvoke[*stats.Engine](injector)
	_ = do.MustInvoke[*providers.DashboardServiceHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
