package providers

import (
	"github.com/samber/do/v2"

	"github.com/screendapp/screend-server/internal/config"
	"github.com/screendapp/screend-server/internal/logger"
	"github.com/screendapp/screend-server/internal/metadata/tmdb"
)

// TMDBClientHandle wraps the TMDB client with shutdown capability.
type TMDBClientHandle struct {
	*tmdb.Client
}

// Shutdown implements do.Shutdownable.
func (h *TMDBClientHandle) Shutdown() error {
	h.Client.Close()
	return nil
}

// ProvideTMDBClient provides the movie metadata client. The client is
// created even without an API key; it then reports unconfigured and
// enrichment stays disabled.
func ProvideTMDBClient(i do.Injector) (*TMDBClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := tmdb.New(cfg.TMDB, log.Logger)
	if client.Configured() {
		log.Info("TMDB client initialized",
			"batch_size", cfg.TMDB.BatchSize,
			"requests_per_second", cfg.TMDB.RequestsPerSecond,
		)
	} else {
		log.Warn("No TMDB API key configured, enrichment disabled")
	}

	return &TMDBClientHandle{Client: client}, nil
}
