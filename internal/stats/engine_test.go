package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screendapp/screend-server/internal/domain"
	"github.com/screendapp/screend-server/internal/sentiment"
)

func sampleExport() domain.Export {
	return domain.Export{
		Diary: domain.RecordSet{
			diaryRec("Heat", "2024-01-01", "4", map[string]string{"Rewatch": "Yes", "Comment": "great"}),
			diaryRec("Alien", "2024-01-02", "5", map[string]string{"Rewatch": "No", "Comment": ""}),
			diaryRec("Heat", "2024-02-10", "5", map[string]string{"Rewatch": "Yes", "Comment": "even better"}),
		},
		Watched: domain.RecordSet{
			{"Name": "Heat", "Date": "2024-01-01", "Year": "1995"},
			{"Name": "Alien", "Date": "2024-01-02", "Year": "1979"},
		},
		Ratings: domain.RecordSet{
			{"Name": "Heat", "Rating": "5"},
			{"Name": "Alien", "Rating": "5"},
			{"Name": "Cats", "Rating": "0.5"},
		},
		Reviews: domain.RecordSet{
			{"Name": "Heat", "Review": "an amazing heist film"},
		},
		LikedFilms: domain.RecordSet{
			{"Name": "Heat"},
		},
	}
}

func TestDerive(t *testing.T) {
	engine := NewEngine(sentiment.New())
	stats := engine.Derive(sampleExport(), nil)

	assert.Equal(t, 2, stats.TotalWatched)
	assert.Equal(t, 1, stats.RewatchedCount)
	assert.Equal(t, 1, stats.LovedCount)
	assert.Equal(t, 3, stats.TotalRated)
	assert.Equal(t, 1, stats.ReviewsWritten)
	assert.Equal(t, "2024-01-01", stats.FirstWatchDate)
	assert.Equal(t, "Heat", stats.FirstWatchFilm)
	assert.Equal(t, "2024-02-10", stats.LastWatchDate)
	assert.Equal(t, "Heat", stats.MostRewatched.Name)
	assert.Equal(t, domain.EnrichmentIdle, stats.EnrichmentStatus)

	// Enrichment-derived fields stay at their placeholders.
	assert.Nil(t, stats.TopDirectors)
	assert.Nil(t, stats.CountryData)
	assert.Zero(t, stats.MaxCountryCount)
}

func TestDerive_WithEnrichedFilms(t *testing.T) {
	engine := NewEngine(sentiment.New())
	enriched := []domain.EnrichedFilm{
		{Title: "Heat", Director: "Michael Mann", Countries: []string{"US"}, Matched: true},
		{Title: "Alien", Director: "Ridley Scott", Countries: []string{"US", "GB"}, Matched: true},
	}

	stats := engine.Derive(sampleExport(), enriched)

	require.Len(t, stats.TopDirectors, 2)
	assert.Equal(t, 2, stats.CountryData["US"].Count)
	assert.Equal(t, 2, stats.MaxCountryCount)
}

func TestDerive_EmptyExport(t *testing.T) {
	engine := NewEngine(sentiment.New())
	stats := engine.Derive(domain.Export{}, nil)

	assert.Zero(t, stats.TotalWatched)
	assert.Zero(t, stats.AverageRating)
	assert.Equal(t, "N/A", stats.MostRewatched.Name)
	assert.Equal(t, "N/A", stats.GoToRating.Rating)
	assert.Equal(t, "N/A", stats.ProlificMonth.Month)
	assert.Equal(t, "N/A", stats.BusiestDay.Day)
	assert.Equal(t, "N/A", stats.PrimeTimeYear)
	assert.Nil(t, stats.BiggestRatingSwing)
	assert.Zero(t, stats.LongestStreak)
}

func TestDerive_Deterministic(t *testing.T) {
	engine := NewEngine(sentiment.New())
	export := sampleExport()
	enriched := []domain.EnrichedFilm{
		{Title: "Heat", Director: "Michael Mann", Cast: []domain.CastMember{{Name: "Al Pacino"}}, Countries: []string{"US"}, Matched: true},
	}

	first := engine.Derive(export, enriched)
	for range 25 {
		assert.Equal(t, first, engine.Derive(export, enriched))
	}
}
