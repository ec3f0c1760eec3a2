// Package stats derives the dashboard metrics from an uploaded export.
// Every metric is a pure function of the record sets (plus the enriched
// films, once enrichment has completed): no hidden state, no caching,
// and ranking ties always break toward the first-encountered entry so
// repeated derivation over identical input is bit-identical.
package stats

import (
	"github.com/screendapp/screend-server/internal/domain"
	"github.com/screendapp/screend-server/internal/schema"
	"github.com/screendapp/screend-server/internal/sentiment"
)

// Engine derives dashboard statistics. The sentiment analyzer is
// injected so derivation itself stays free of module-level state.
type Engine struct {
	sentiment *sentiment.Analyzer
}

// NewEngine creates a derivation engine.
func NewEngine(analyzer *sentiment.Analyzer) *Engine {
	return &Engine{sentiment: analyzer}
}

// Derive computes every metric over the export. Enriched may be nil;
// the enrichment-derived fields then keep their neutral placeholders.
func (e *Engine) Derive(export domain.Export, enriched []domain.EnrichedFilm) domain.Stats {
	diaryCols := schema.ResolveColumns(export.Diary)
	watchedCols := schema.ResolveColumns(export.Watched)
	ratingsCols := schema.ResolveColumns(export.Ratings)
	reviewsCols := schema.ResolveColumns(export.Reviews)

	totalRated, averageRating := RatedSummary(export.Ratings, ratingsCols)
	first, last := WatchSpan(export.Diary, diaryCols)
	monthly := MonthlyActivity(export.Watched, watchedCols)
	favorites, stinkers := FavoriteAndStinkerFilms(export.Ratings, ratingsCols)

	s := domain.Stats{
		TotalWatched:   len(export.Watched),
		RewatchedCount: RewatchedCount(export.Diary, diaryCols),
		LovedCount:     len(export.LikedFilms),
		TotalRated:     totalRated,
		AverageRating:  averageRating,
		ReviewsWritten: len(export.Reviews),

		FirstWatchDate: first.Date,
		FirstWatchFilm: first.Film,
		LastWatchDate:  last.Date,
		LastWatchFilm:  last.Film,

		MonthlyActivity:    monthly,
		MonthlyRatings:     MonthlyRatings(export.Diary, diaryCols),
		RatingDistribution: RatingDistribution(export.Ratings, ratingsCols),
		YearsData:          YearsData(export.Watched, watchedCols),
		DecadeRatings:      DecadeRatings(export.Ratings, ratingsCols),
		HeatmapValues:      HeatmapValues(export.Diary, diaryCols),
		TopYears:           TopYears(export.Watched, watchedCols),
		TopCountriesLocal:  TopCountries(export.Watched, watchedCols),

		MostRewatched:      MostRewatched(export.Diary, diaryCols),
		RewatchRatio:       RewatchRatioOf(export.Diary, diaryCols),
		GoToRating:         GoToRatingOf(export.Ratings, ratingsCols),
		FavoriteFilms:      favorites,
		StinkerFilms:       stinkers,
		AverageLoggingLag:  AverageLoggingLag(export.Diary, diaryCols),
		ProlificMonth:      ProlificMonth(monthly),
		BusiestDay:         BusiestDay(export.Diary, diaryCols),
		BiggestRatingSwing: BiggestRatingSwing(export.Diary, diaryCols),
		LongestStreak:      LongestStreak(export.Diary, diaryCols),
		BingeWatchCount:    BingeWatchCount(export.Diary, diaryCols),
		PrimeTimeYear:      PrimeTimeYear(export.Diary, diaryCols),
		AverageSentiment:   e.AverageSentiment(export.Diary, diaryCols, export.Reviews, reviewsCols),

		EnrichmentStatus: domain.EnrichmentIdle,
	}

	if enriched != nil {
		s.TopDirectors = TopDirectors(enriched)
		s.MostWatchedStars = MostWatchedStars(enriched)
		s.AllStarCast = AllStarCast(enriched, export.Ratings, ratingsCols)
		s.CountryData, s.MaxCountryCount = CountryData(enriched)
	}

	return s
}
