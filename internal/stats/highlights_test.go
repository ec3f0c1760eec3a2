package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screendapp/screend-server/internal/domain"
	"github.com/screendapp/screend-server/internal/sentiment"
)

func TestMostRewatched(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("Heat", "2024-01-01", "", map[string]string{"Rewatch": "Yes"}),
		diaryRec("Alien", "2024-01-02", "", map[string]string{"Rewatch": "Yes"}),
		diaryRec("Heat", "2024-01-03", "", map[string]string{"Rewatch": "Yes"}),
		diaryRec("Dune", "2024-01-04", "", map[string]string{"Rewatch": "No"}),
	}

	got := MostRewatched(diary, resolved(diary))
	assert.Equal(t, domain.NameCount{Name: "Heat", Count: 2}, got)
}

func TestMostRewatched_TieKeepsFirstEncounter(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("Alien", "2024-01-01", "", map[string]string{"Rewatch": "Yes"}),
		diaryRec("Heat", "2024-01-02", "", map[string]string{"Rewatch": "Yes"}),
	}

	got := MostRewatched(diary, resolved(diary))
	assert.Equal(t, "Alien", got.Name)
}

func TestMostRewatched_NoRewatches(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("Heat", "2024-01-01", "", map[string]string{"Rewatch": "No"}),
	}
	assert.Equal(t, domain.NameCount{Name: "N/A"}, MostRewatched(diary, resolved(diary)))
}

func TestRewatchRatioOf(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("Heat", "2024-01-01", "", map[string]string{"Rewatch": "Yes"}),
		diaryRec("Alien", "2024-01-02", "", map[string]string{"Rewatch": "No"}),
		diaryRec("Dune", "2024-01-03", "", map[string]string{"Rewatch": ""}),
	}

	assert.Equal(t, domain.RewatchRatio{Rewatches: 1, New: 2}, RewatchRatioOf(diary, resolved(diary)))
	assert.Equal(t, domain.RewatchRatio{}, RewatchRatioOf(nil, resolved(nil)))
}

func TestGoToRatingOf(t *testing.T) {
	ratings := domain.RecordSet{
		{"Name": "A", "Rating": "3.5"},
		{"Name": "B", "Rating": "4"},
		{"Name": "C", "Rating": "3.5"},
	}

	assert.Equal(t, domain.GoToRating{Rating: "3.5", Count: 2}, GoToRatingOf(ratings, resolved(ratings)))
	assert.Equal(t, domain.GoToRating{Rating: "N/A"}, GoToRatingOf(nil, resolved(nil)))
}

func TestFavoriteAndStinkerFilms(t *testing.T) {
	ratings := domain.RecordSet{
		{"Name": "A", "Rating": "5"},
		{"Name": "B", "Rating": "5"},
		{"Name": "C", "Rating": "1"},
		{"Name": "D", "Rating": "3"},
	}

	favorites, stinkers := FavoriteAndStinkerFilms(ratings, resolved(ratings))
	require.Len(t, favorites, 2)
	assert.Equal(t, "A", favorites[0].Name)
	assert.Equal(t, "B", favorites[1].Name)
	require.Len(t, stinkers, 1)
	assert.Equal(t, "C", stinkers[0].Name)
}

func TestFavoriteAndStinkerFilms_Empty(t *testing.T) {
	favorites, stinkers := FavoriteAndStinkerFilms(nil, resolved(nil))
	assert.Empty(t, favorites)
	assert.Empty(t, stinkers)
}

func TestAverageLoggingLag_DiscardsNegativeLags(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("A", "2024-01-01", "", map[string]string{"Date": "2024-01-03"}), // lag 2
		diaryRec("B", "2024-01-05", "", map[string]string{"Date": "2024-01-04"}), // lag -1: dropped
		diaryRec("C", "2024-01-10", "", map[string]string{"Date": "2024-01-14"}), // lag 4
	}

	assert.InDelta(t, 3.0, AverageLoggingLag(diary, resolved(diary)), 1e-9)
}

func TestAverageLoggingLag_NoLoggedColumn(t *testing.T) {
	diary := domain.RecordSet{diaryRec("A", "2024-01-01", "", nil)}
	assert.Equal(t, 0.0, AverageLoggingLag(diary, resolved(diary)))
}

func TestProlificMonth(t *testing.T) {
	monthly := []domain.MonthCount{
		{Month: "Jan 2024", Count: 3},
		{Month: "Feb 2024", Count: 7},
		{Month: "Mar 2024", Count: 7},
	}

	// Ties keep the earlier bucket.
	assert.Equal(t, domain.MonthCount{Month: "Feb 2024", Count: 7}, ProlificMonth(monthly))
	assert.Equal(t, domain.MonthCount{Month: "N/A"}, ProlificMonth(nil))
}

func TestBusiestDay(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("A", "2024-01-01", "", nil), // Monday
		diaryRec("B", "2024-01-08", "", nil), // Monday
		diaryRec("C", "2024-01-02", "", nil), // Tuesday
	}

	assert.Equal(t, domain.DayCount{Day: "Monday", Count: 2}, BusiestDay(diary, resolved(diary)))
	assert.Equal(t, domain.DayCount{Day: "N/A"}, BusiestDay(nil, resolved(nil)))
}

func TestBiggestRatingSwing(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("Heat", "2024-01-01", "2", nil),
		diaryRec("Heat", "2024-03-01", "5", nil),
		diaryRec("Alien", "2024-01-01", "4", nil),
		diaryRec("Alien", "2024-02-01", "3.5", nil),
		diaryRec("Dune", "2024-01-01", "4", nil),
	}

	got := BiggestRatingSwing(diary, resolved(diary))
	require.NotNil(t, got)
	assert.Equal(t, "Heat", got.Name)
	assert.InDelta(t, 3.0, got.Change, 1e-9)
	assert.InDelta(t, 2.0, got.First, 1e-9)
	assert.InDelta(t, 5.0, got.Latest, 1e-9)
}

func TestBiggestRatingSwing_NilCases(t *testing.T) {
	// No film with two dated, rated entries.
	single := domain.RecordSet{diaryRec("Heat", "2024-01-01", "4", nil)}
	assert.Nil(t, BiggestRatingSwing(single, resolved(single)))

	// A swing of zero is no swing.
	flat := domain.RecordSet{
		diaryRec("Heat", "2024-01-01", "4", nil),
		diaryRec("Heat", "2024-02-01", "4", nil),
	}
	assert.Nil(t, BiggestRatingSwing(flat, resolved(flat)))
}

func TestLongestStreak(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("A", "2024-01-01", "", nil),
		diaryRec("B", "2024-01-02", "", nil),
		diaryRec("C", "2024-01-03", "", nil),
		diaryRec("D", "2024-01-05", "", nil),
	}

	assert.Equal(t, 3, LongestStreak(diary, resolved(diary)))
}

func TestLongestStreak_EdgeCases(t *testing.T) {
	assert.Equal(t, 0, LongestStreak(nil, resolved(nil)))

	single := domain.RecordSet{diaryRec("A", "2024-01-01", "", nil)}
	assert.Equal(t, 1, LongestStreak(single, resolved(single)))

	// Duplicate dates collapse before streak measurement.
	dupes := domain.RecordSet{
		diaryRec("A", "2024-01-01", "", nil),
		diaryRec("B", "2024-01-01", "", nil),
		diaryRec("C", "2024-01-02", "", nil),
	}
	assert.Equal(t, 2, LongestStreak(dupes, resolved(dupes)))
}

func TestBingeWatchCount(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("A", "2024-01-01", "", nil),
		diaryRec("B", "2024-01-01", "", nil),
		diaryRec("C", "2024-01-02", "", nil),
	}

	assert.Equal(t, 2, BingeWatchCount(diary, resolved(diary)))
	assert.Equal(t, 0, BingeWatchCount(nil, resolved(nil)))
}

func TestPrimeTimeYear(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("A", "2024-01-01", "", map[string]string{"Year": "1990"}),
		diaryRec("B", "2024-01-02", "", map[string]string{"Year": "1995"}),
		diaryRec("C", "2024-01-03", "", map[string]string{"Year": "2000"}),
	}

	assert.Equal(t, "1995", PrimeTimeYear(diary, resolved(diary)))
}

func TestPrimeTimeYear_Unresolved(t *testing.T) {
	diary := domain.RecordSet{diaryRec("A", "2024-01-01", "", nil)}
	assert.Equal(t, "N/A", PrimeTimeYear(diary, resolved(diary)))
}

func TestAverageSentiment(t *testing.T) {
	engine := NewEngine(sentiment.New())

	diary := domain.RecordSet{
		diaryRec("A", "2024-01-01", "", map[string]string{"Comment": "an amazing film"}),
	}
	reviews := domain.RecordSet{
		{"Name": "B", "Review": "boring and dull"},
	}

	got := engine.AverageSentiment(diary, resolved(diary), reviews, resolved(reviews))
	// amazing(+4), boring(-2), dull(-2): sum 0 over 3 scored words.
	assert.InDelta(t, 0.0, got, 1e-9)

	positive := engine.AverageSentiment(diary, resolved(diary), nil, resolved(nil))
	assert.Greater(t, positive, 0.0)
}

func TestAverageSentiment_NoTextColumns(t *testing.T) {
	engine := NewEngine(sentiment.New())

	diary := domain.RecordSet{diaryRec("A", "2024-01-01", "", nil)}
	assert.Equal(t, 0.0, engine.AverageSentiment(diary, resolved(diary), nil, resolved(nil)))
}
