package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/screendapp/screend-server/internal/config"
	"github.com/screendapp/screend-server/internal/logger"
	"github.com/screendapp/screend-server/internal/metadata/tmdb"
	"github.com/screendapp/screend-server/internal/sentiment"
	"github.com/screendapp/screend-server/internal/service"
	"github.com/screendapp/screend-server/internal/stats"
)

// ProvideStatsEngine provides the statistics derivation engine.
func ProvideStatsEngine(i do.Injector) (*stats.Engine, error) {
	return stats.NewEngine(sentiment.New()), nil
}

// DashboardServiceHandle wraps the dashboard service with shutdown capability.
type DashboardServiceHandle struct {
	*service.DashboardService
}

// Shutdown implements do.Shutdownable. Waits for any in-flight
// enrichment task to observe cancellation before returning.
func (h *DashboardServiceHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.DashboardService.Shutdown(ctx)
}

// ProvideDashboardService provides the dashboard service.
func ProvideDashboardService(i do.Injector) (*DashboardServiceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	engine := do.MustInvoke[*stats.Engine](i)
	clientHandle := do.MustInvoke[*TMDBClientHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	// Leave the interface nil when unconfigured so the service can
	// report enrichment as unavailable. A typed nil would not compare
	// equal to nil.
	var enricher service.Enricher
	if clientHandle.Configured() {
		enricher = tmdb.NewEnricher(clientHandle.Client, cfg.TMDB, log.Logger)
	}

	svc := service.NewDashboardService(engine, enricher, indexHandle.SearchIndex, sseHandle.Manager, log.Logger)
	return &DashboardServiceHandle{DashboardService: svc}, nil
}
