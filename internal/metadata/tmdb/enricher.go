package tmdb

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/screendapp/screend-server/internal/config"
	"github.com/screendapp/screend-server/internal/domain"
	"github.com/screendapp/screend-server/internal/schema"
)

const (
	defaultBatchSize  = 40
	defaultBatchDelay = time.Second
	defaultCastLimit  = 10
)

// Provider is the metadata lookup surface the enricher needs. *Client
// implements it.
type Provider interface {
	SearchMovie(ctx context.Context, title, year string) (int64, bool, error)
	Details(ctx context.Context, id int64) (*MovieDetails, error)
	MovieCredits(ctx context.Context, id int64) (*Credits, error)
}

// Enricher augments watched films with external metadata. Films are
// processed in fixed-size concurrent batches with a pause between
// batches. Lookup failures never abort a run: the affected film is
// carried through unmatched.
type Enricher struct {
	provider Provider
	logger   *slog.Logger

	batchSize     int
	batchDelay    time.Duration
	castLimit     int
	dropUnmatched bool
	minRuntime    int
}

// NewEnricher creates an enricher over the given provider.
func NewEnricher(provider Provider, cfg config.TMDBConfig, logger *slog.Logger) *Enricher {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	batchDelay := cfg.BatchDelay
	if batchDelay < 0 {
		batchDelay = defaultBatchDelay
	}
	castLimit := cfg.CastLimit
	if castLimit <= 0 {
		castLimit = defaultCastLimit
	}

	return &Enricher{
		provider:      provider,
		logger:        logger,
		batchSize:     batchSize,
		batchDelay:    batchDelay,
		castLimit:     castLimit,
		dropUnmatched: cfg.DropUnmatched,
		minRuntime:    cfg.MinRuntime,
	}
}

// Enrich looks up every film and returns the enriched list in input
// order. onProgress, if non-nil, receives the completion percentage
// (0-100) after each batch. The only error returned is context
// cancellation; individual lookup failures are absorbed.
func (e *Enricher) Enrich(ctx context.Context, films domain.RecordSet, cols schema.Columns, onProgress func(int)) ([]domain.EnrichedFilm, error) {
	total := len(films)
	results := make([]domain.EnrichedFilm, total)

	for start := 0; start < total; start += e.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+e.batchSize, total)
		batch := films[start:end]

		g, gctx := errgroup.WithContext(ctx)
		for i, rec := range batch {
			idx := start + i
			g.Go(func() error {
				results[idx] = e.enrichOne(gctx, rec, cols)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if onProgress != nil {
			onProgress(int(math.Round(float64(end) / float64(total) * 100)))
		}

		if end < total && e.batchDelay > 0 {
			select {
			case <-time.After(e.batchDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	if !e.dropUnmatched {
		return results, nil
	}
	matched := make([]domain.EnrichedFilm, 0, total)
	for _, film := range results {
		if film.Matched {
			matched = append(matched, film)
		}
	}
	return matched, nil
}

// enrichOne resolves metadata for a single film. Any failure along the
// way degrades to an unmatched result.
func (e *Enricher) enrichOne(ctx context.Context, rec domain.Record, cols schema.Columns) domain.EnrichedFilm {
	title := cols.Value(rec, schema.RoleFilm)
	year := cols.Value(rec, schema.RoleYear)

	film := domain.EnrichedFilm{
		Record: rec,
		Title:  title,
		Year:   year,
	}
	if title == "" {
		return film
	}

	id, found, err := e.provider.SearchMovie(ctx, title, year)
	if err != nil {
		e.logger.Warn("film search failed", "title", title, "error", err)
		return film
	}
	if !found {
		return film
	}

	// Details and credits are independent lookups; fetch both at once.
	var (
		details *MovieDetails
		credits *Credits
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		details, err = e.provider.Details(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		credits, err = e.provider.MovieCredits(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		e.logger.Warn("film lookup failed", "title", title, "id", id, "error", err)
		return film
	}

	if e.minRuntime > 0 && details.Runtime > 0 && details.Runtime < e.minRuntime {
		return film
	}

	film.Matched = true
	film.Director = credits.Director()
	film.Genres = details.Genres
	film.Countries = details.Countries
	film.Cast = selectCast(credits.Cast, e.castLimit)
	if film.Year == "" && len(details.ReleaseDate) >= 4 {
		film.Year = details.ReleaseDate[:4]
	}
	return film
}

// selectCast keeps the top-billed acting, non-voice performances.
func selectCast(cast []CastCredit, limit int) []domain.CastMember {
	var members []domain.CastMember
	for _, m := range cast {
		if m.Department != "Acting" || isVoiceRole(m.Character) {
			continue
		}
		members = append(members, domain.CastMember{
			Name:        m.Name,
			Character:   m.Character,
			ProfilePath: m.ProfilePath,
		})
		if len(members) == limit {
			break
		}
	}
	return members
}

func isVoiceRole(character string) bool {
	return strings.Contains(strings.ToLower(character), "(voice)")
}
