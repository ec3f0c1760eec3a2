package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screendapp/screend-server/internal/domain"
)

func enrichedFilm(title, director string, cast ...string) domain.EnrichedFilm {
	members := make([]domain.CastMember, 0, len(cast))
	for _, name := range cast {
		members = append(members, domain.CastMember{Name: name})
	}
	return domain.EnrichedFilm{Title: title, Director: director, Cast: members, Matched: true}
}

func TestTopDirectors(t *testing.T) {
	enriched := []domain.EnrichedFilm{
		enrichedFilm("Heat", "Michael Mann"),
		enrichedFilm("Thief", "Michael Mann"),
		enrichedFilm("Alien", "Ridley Scott"),
		enrichedFilm("Unknown", ""),
	}

	got := TopDirectors(enriched)
	require.Len(t, got, 2)
	assert.Equal(t, domain.NameCount{Name: "Michael Mann", Count: 2}, got[0])
	assert.Equal(t, domain.NameCount{Name: "Ridley Scott", Count: 1}, got[1])
}

func TestMostWatchedStars(t *testing.T) {
	enriched := []domain.EnrichedFilm{
		{Title: "Heat", Cast: []domain.CastMember{
			{Name: "Al Pacino", ProfilePath: "/pacino.jpg"},
			{Name: "Robert De Niro"},
		}},
		{Title: "The Irishman", Cast: []domain.CastMember{
			{Name: "Robert De Niro", ProfilePath: "/deniro.jpg"},
			{Name: "Al Pacino", ProfilePath: "/pacino-old.jpg"},
		}},
	}

	got := MostWatchedStars(enriched)
	require.Len(t, got, 2)
	// Ties keep encounter order; the profile sticks from the first
	// appearance.
	assert.Equal(t, domain.ActorCount{Name: "Al Pacino", ProfilePath: "/pacino.jpg", Count: 2}, got[0])
	assert.Equal(t, domain.ActorCount{Name: "Robert De Niro", Count: 2}, got[1])
}

func TestAllStarCast(t *testing.T) {
	enriched := []domain.EnrichedFilm{
		enrichedFilm("A", "", "Star", "Extra"),
		enrichedFilm("B", "", "Star"),
		enrichedFilm("C", "", "Star"),
		enrichedFilm("Unrated", "", "Star", "Extra"),
	}
	ratings := domain.RecordSet{
		{"Name": "A", "Rating": "5"},
		{"Name": "B", "Rating": "4"},
		{"Name": "C", "Rating": "3"},
	}

	got := AllStarCast(enriched, ratings, resolved(ratings))
	require.Len(t, got, 1)
	assert.Equal(t, "Star", got[0].Name)
	assert.Equal(t, 3, got[0].Count)
	assert.InDelta(t, 4.0, got[0].AverageRating, 1e-9)
}

func TestAllStarCast_FirstRatingPerTitleWins(t *testing.T) {
	enriched := []domain.EnrichedFilm{
		enrichedFilm("A", "", "Star"),
		enrichedFilm("B", "", "Star"),
		enrichedFilm("C", "", "Star"),
	}
	ratings := domain.RecordSet{
		{"Name": "A", "Rating": "2"},
		{"Name": "A", "Rating": "5"},
		{"Name": "B", "Rating": "2"},
		{"Name": "C", "Rating": "2"},
	}

	got := AllStarCast(enriched, ratings, resolved(ratings))
	require.Len(t, got, 1)
	assert.InDelta(t, 2.0, got[0].AverageRating, 1e-9)
}

func TestAllStarCast_RanksByMeanDescending(t *testing.T) {
	enriched := []domain.EnrichedFilm{
		enrichedFilm("A", "", "Low", "High"),
		enrichedFilm("B", "", "Low", "High"),
		enrichedFilm("C", "", "Low"),
		enrichedFilm("D", "", "High"),
	}
	ratings := domain.RecordSet{
		{"Name": "A", "Rating": "3"},
		{"Name": "B", "Rating": "3"},
		{"Name": "C", "Rating": "1"},
		{"Name": "D", "Rating": "5"},
	}

	got := AllStarCast(enriched, ratings, resolved(ratings))
	require.Len(t, got, 2)
	assert.Equal(t, "High", got[0].Name)
	assert.Equal(t, "Low", got[1].Name)
}

func TestCountryData(t *testing.T) {
	enriched := []domain.EnrichedFilm{
		{Title: "Heat", Countries: []string{"US"}},
		{Title: "Alien", Countries: []string{"US", "GB"}},
		{Title: "Ran", Countries: []string{"JP", "FR"}},
	}

	counts, maxCount := CountryData(enriched)
	assert.Equal(t, 2, maxCount)
	require.Contains(t, counts, "US")
	assert.Equal(t, 2, counts["US"].Count)
	assert.Equal(t, "United States", counts["US"].Name)
	assert.Equal(t, "United Kingdom", counts["GB"].Name)
	assert.Equal(t, 1, counts["JP"].Count)
}

func TestCountryData_UnknownCodeFallsBack(t *testing.T) {
	counts, maxCount := CountryData([]domain.EnrichedFilm{
		{Title: "X", Countries: []string{"X1"}},
	})
	assert.Equal(t, 1, maxCount)
	require.Contains(t, counts, "X1")
	assert.Equal(t, "X1", counts["X1"].Name)
}

func TestCountryData_Empty(t *testing.T) {
	counts, maxCount := CountryData(nil)
	assert.Empty(t, counts)
	assert.Equal(t, 0, maxCount)
}
