package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screendapp/screend-server/internal/domain"
	"github.com/screendapp/screend-server/internal/schema"
)

func diaryRec(name, watchedDate, rating string, extra map[string]string) domain.Record {
	rec := domain.Record{
		"Name":         name,
		"Watched Date": watchedDate,
		"Rating":       rating,
	}
	for k, v := range extra {
		rec[k] = v
	}
	return rec
}

func resolved(rs domain.RecordSet) schema.Columns {
	return schema.ResolveColumns(rs)
}

func TestRewatchedCount(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("Heat", "2024-01-01", "", map[string]string{"Rewatch": "Yes"}),
		diaryRec("Heat", "2024-02-01", "", map[string]string{"Rewatch": "yes"}),
		diaryRec("Alien", "2024-01-02", "", map[string]string{"Rewatch": "YES"}),
		diaryRec("Dune", "2024-01-03", "", map[string]string{"Rewatch": "No"}),
		diaryRec("Tenet", "2024-01-04", "", map[string]string{"Rewatch": ""}),
	}

	// Distinct titles, not entries: Heat counts once.
	assert.Equal(t, 2, RewatchedCount(diary, resolved(diary)))
}

func TestRewatchedCount_NoRewatchColumn(t *testing.T) {
	diary := domain.RecordSet{diaryRec("Heat", "2024-01-01", "", nil)}
	assert.Equal(t, 0, RewatchedCount(diary, resolved(diary)))
}

func TestRatedSummary(t *testing.T) {
	ratings := domain.RecordSet{
		{"Name": "Heat", "Rating": "5"},
		{"Name": "Alien", "Rating": "4"},
		{"Name": "Dune", "Rating": "3"},
		{"Name": "Tenet", "Rating": ""},
		{"Name": "Cats", "Rating": "not-a-number"},
	}

	count, avg := RatedSummary(ratings, resolved(ratings))
	assert.Equal(t, 3, count)
	assert.InDelta(t, 4.0, avg, 1e-9)
}

func TestRatedSummary_Empty(t *testing.T) {
	count, avg := RatedSummary(nil, resolved(nil))
	assert.Equal(t, 0, count)
	assert.Equal(t, 0.0, avg)
}

func TestWatchSpan(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("Heat", "2024-03-10", "", nil),
		diaryRec("Alien", "2023-11-02", "", nil),
		diaryRec("Dune", "invalid", "", nil),
		diaryRec("Tenet", "2024-06-01", "", nil),
	}

	first, last := WatchSpan(diary, resolved(diary))
	assert.Equal(t, "2023-11-02", first.Date)
	assert.Equal(t, "Alien", first.Film)
	assert.Equal(t, "2024-06-01", last.Date)
	assert.Equal(t, "Tenet", last.Film)
}

func TestWatchSpan_NoValidDates(t *testing.T) {
	diary := domain.RecordSet{diaryRec("Heat", "garbage", "", nil)}

	first, last := WatchSpan(diary, resolved(diary))
	assert.Equal(t, "", first.Date)
	assert.Equal(t, "", first.Film)
	assert.Equal(t, "", last.Date)
}

func TestWatchSpan_EqualDatesKeepFirstEncounter(t *testing.T) {
	diary := domain.RecordSet{
		diaryRec("Heat", "2024-01-01", "", nil),
		diaryRec("Alien", "2024-01-01", "", nil),
	}

	first, last := WatchSpan(diary, resolved(diary))
	assert.Equal(t, "Heat", first.Film)
	assert.Equal(t, "Heat", last.Film)
}
