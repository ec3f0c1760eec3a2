// Package service holds the application services behind the HTTP
// surface. DashboardService owns the single uploaded export, its
// derived statistics, and the enrichment task lifecycle.
package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/screendapp/screend-server/internal/domain"
	domainerrors "github.com/screendapp/screend-server/internal/errors"
	"github.com/screendapp/screend-server/internal/ingest"
	"github.com/screendapp/screend-server/internal/schema"
	"github.com/screendapp/screend-server/internal/search"
	"github.com/screendapp/screend-server/internal/sse"
	"github.com/screendapp/screend-server/internal/stats"
	"github.com/screendapp/screend-server/internal/validation"
)

// Enricher looks up external metadata for the watched films, reporting
// progress as batches settle. Implemented by tmdb.Enricher.
type Enricher interface {
	Enrich(ctx context.Context, films domain.RecordSet, cols schema.Columns, onProgress func(int)) ([]domain.EnrichedFilm, error)
}

// DashboardService manages one uploaded export at a time. Uploading a
// new export replaces the previous one, resets enrichment to idle, and
// rebuilds the search index.
//
// Thread safety: all public methods are safe for concurrent use. The
// enrichment task runs on its own goroutine and re-derives statistics
// when it completes.
type DashboardService struct {
	engine    *stats.Engine
	enricher  Enricher // nil when no API key is configured
	index     *search.SearchIndex
	events    *sse.Manager
	validator *validation.Validator
	logger    *slog.Logger

	mu       sync.RWMutex
	export   *domain.Export
	stats    domain.Stats
	enriched []domain.EnrichedFilm
	status   domain.EnrichmentStatus
	progress int

	cancel context.CancelFunc // cancels the running enrichment task
	wg     sync.WaitGroup
}

// NewDashboardService creates a dashboard service. The enricher may be
// nil; statistics then stay unenriched and StartEnrichment rejects.
func NewDashboardService(engine *stats.Engine, enricher Enricher, index *search.SearchIndex, events *sse.Manager, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		engine:    engine,
		enricher:  enricher,
		index:     index,
		events:    events,
		validator: validation.New(),
		logger:    logger,
		status:    domain.EnrichmentIdle,
	}
}

// Upload ingests a zip export, derives the full statistics set, and
// rebuilds the search index. Any running enrichment task is canceled;
// the new export starts back at idle.
func (s *DashboardService) Upload(ctx context.Context, data []byte) (domain.Stats, error) {
	export, err := ingest.ReadArchiveBytes(data)
	if err != nil {
		return domain.Stats{}, err
	}

	derived := s.engine.Derive(export, nil)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.export = &export
	s.enriched = nil
	s.status = domain.EnrichmentIdle
	s.progress = 0
	s.stats = derived
	s.mu.Unlock()

	if err := s.reindex(export, nil); err != nil {
		s.logger.Warn("failed to rebuild search index", "error", err)
	}

	s.events.Emit(sse.NewExportUploadedEvent(len(export.Diary), len(export.Watched)))
	s.logger.Info("export uploaded",
		"diary_entries", len(export.Diary),
		"watched_films", len(export.Watched),
		"ratings", len(export.Ratings),
	)

	return derived, nil
}

// Stats returns the current statistics. The enrichment status and
// progress reflect the live task state.
func (s *DashboardService) Stats(_ context.Context) (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.export == nil {
		return domain.Stats{}, domainerrors.NotFound("no export uploaded")
	}

	st := s.stats
	st.EnrichmentStatus = s.status
	st.EnrichmentProgress = s.progress
	return st, nil
}

// ExportSummary reports the record counts of the current export.
type ExportSummary struct {
	DiaryEntries int `json:"diary_entries"`
	WatchedFilms int `json:"watched_films"`
	Ratings      int `json:"ratings"`
	Reviews      int `json:"reviews"`
	LikedFilms   int `json:"liked_films"`
}

// Export returns the record counts of the current export.
func (s *DashboardService) Export(_ context.Context) (ExportSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.export == nil {
		return ExportSummary{}, domainerrors.NotFound("no export uploaded")
	}

	return ExportSummary{
		DiaryEntries: len(s.export.Diary),
		WatchedFilms: len(s.export.Watched),
		Ratings:      len(s.export.Ratings),
		Reviews:      len(s.export.Reviews),
		LikedFilms:   len(s.export.LikedFilms),
	}, nil
}

// EnrichmentState reports the task status and progress (0-100).
func (s *DashboardService) EnrichmentState() (domain.EnrichmentStatus, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status, s.progress
}

// StartEnrichment kicks off the metadata enrichment task for the
// current export. The task only starts from idle; a start while one is
// running, or after one has finished, is a conflict. Uploading a new
// export resets the state back to idle.
func (s *DashboardService) StartEnrichment(_ context.Context) error {
	if s.enricher == nil {
		return domainerrors.Validation("enrichment is not configured; set a metadata API key")
	}

	s.mu.Lock()
	if s.export == nil {
		s.mu.Unlock()
		return domainerrors.NotFound("no export uploaded")
	}
	if s.status != domain.EnrichmentIdle {
		status := s.status
		s.mu.Unlock()
		return domainerrors.Conflictf("enrichment already %s", status)
	}

	s.status = domain.EnrichmentLoading
	s.progress = 0
	watched := s.export.Watched
	cols := schema.ResolveColumns(watched)

	taskCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	s.events.Emit(sse.NewEnrichmentStartedEvent(len(watched)))
	s.logger.Info("enrichment started", "films", len(watched))

	go s.runEnrichment(taskCtx, watched, cols)

	return nil
}

// Search queries the film index. Before an upload the index is empty
// and every query returns zero hits.
func (s *DashboardService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}
	return s.index.Search(ctx, params)
}

// Shutdown cancels any running enrichment task and waits for it to
// stop, bounded by ctx.
func (s *DashboardService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *DashboardService) runEnrichment(ctx context.Context, watched domain.RecordSet, cols schema.Columns) {
	defer s.wg.Done()

	onProgress := func(p int) {
		s.mu.Lock()
		s.progress = p
		s.mu.Unlock()
		s.events.Emit(sse.NewEnrichmentProgressEvent(p))
	}

	enriched, err := s.enricher.Enrich(ctx, watched, cols, onProgress)
	if err != nil {
		s.mu.Lock()
		// A canceled task was superseded by a new upload or shutdown;
		// the state has already moved on.
		if ctx.Err() == nil && s.status == domain.EnrichmentLoading {
			s.status = domain.EnrichmentError
			s.stats.EnrichmentStatus = domain.EnrichmentError
			s.cancel = nil
		}
		s.mu.Unlock()

		if ctx.Err() != nil {
			s.logger.Info("enrichment canceled")
			return
		}
		s.logger.Error("enrichment failed", "error", err)
		s.events.Emit(sse.NewEnrichmentFailedEvent(err.Error()))
		return
	}

	matched := 0
	for _, film := range enriched {
		if film.Matched {
			matched++
		}
	}

	s.mu.Lock()
	if s.status != domain.EnrichmentLoading {
		// Superseded by a new upload while the last batch settled.
		s.mu.Unlock()
		return
	}
	export := *s.export
	s.enriched = enriched
	s.stats = s.engine.Derive(export, enriched)
	s.stats.EnrichmentStatus = domain.EnrichmentSuccess
	s.stats.EnrichmentProgress = 100
	s.status = domain.EnrichmentSuccess
	s.progress = 100
	s.cancel = nil
	s.mu.Unlock()

	if err := s.reindex(export, enriched); err != nil {
		s.logger.Warn("failed to rebuild search index", "error", err)
	}

	s.events.Emit(sse.NewEnrichmentCompletedEvent(matched, len(enriched)))
	s.logger.Info("enrichment completed", "matched", matched, "total", len(enriched))
}

// reindex rebuilds the search index from the export, using enriched
// film documents when available.
func (s *DashboardService) reindex(export domain.Export, enriched []domain.EnrichedFilm) error {
	cols := schema.ResolveColumns(export.Watched)
	docs := search.DocumentsFromExport(export.Watched, cols, ratingsByTitle(export), enriched)
	return s.index.Rebuild(docs)
}

// ratingsByTitle maps lowercased film titles to the user's rating, for
// denormalizing ratings onto film search documents.
func ratingsByTitle(export domain.Export) map[string]float64 {
	cols := schema.ResolveColumns(export.Ratings)
	out := make(map[string]float64, len(export.Ratings))
	for _, rec := range export.Ratings {
		title := strings.ToLower(cols.Value(rec, schema.RoleFilm))
		if title == "" {
			continue
		}
		if _, seen := out[title]; seen {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(cols.Value(rec, schema.RoleRating)), 64); err == nil {
			out[title] = v
		}
	}
	return out
}
