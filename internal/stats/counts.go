package stats

import (
	"strconv"
	"strings"

	"github.com/screendapp/screend-server/internal/calendar"
	"github.com/screendapp/screend-server/internal/domain"
	"github.com/screendapp/screend-server/internal/schema"
)

// RewatchedCount counts distinct film titles flagged as rewatches in
// the diary. It reports 0 when no rewatch column resolves.
func RewatchedCount(diary domain.RecordSet, cols schema.Columns) int {
	rewatchKey, ok := cols.Lookup(schema.RoleRewatch)
	if !ok {
		return 0
	}

	titles := make(map[string]struct{})
	for _, rec := range diary {
		if strings.EqualFold(rec[rewatchKey], "yes") {
			titles[cols.Value(rec, schema.RoleFilm)] = struct{}{}
		}
	}
	return len(titles)
}

// RatedSummary counts the records whose rating parses as a number and
// returns that count with the mean rating. The mean is 0 when no valid
// ratings exist.
func RatedSummary(ratings domain.RecordSet, cols schema.Columns) (int, float64) {
	var (
		count int
		sum   float64
	)
	for _, rec := range ratings {
		if v, ok := parseRating(cols.Value(rec, schema.RoleRating)); ok {
			count++
			sum += v
		}
	}
	if count == 0 {
		return 0, 0
	}
	return count, sum / float64(count)
}

// WatchEnd is one endpoint of the diary's date range.
type WatchEnd struct {
	Date string
	Film string
}

// WatchSpan returns the earliest and latest dated diary entries with
// their film titles. Both endpoints are empty when no entry carries a
// valid date; equal dates keep the first-encountered entry.
func WatchSpan(diary domain.RecordSet, cols schema.Columns) (first, last WatchEnd) {
	var (
		haveAny  bool
		firstDay calendar.Date
		lastDay  calendar.Date
	)
	for _, rec := range diary {
		d, ok := calendar.Parse(cols.Value(rec, schema.RoleDate))
		if !ok {
			continue
		}
		film := cols.Value(rec, schema.RoleFilm)
		if !haveAny {
			haveAny = true
			firstDay, lastDay = d, d
			first = WatchEnd{Date: d.String(), Film: film}
			last = first
			continue
		}
		if d.Before(firstDay) {
			firstDay = d
			first = WatchEnd{Date: d.String(), Film: film}
		}
		if d.After(lastDay) {
			lastDay = d
			last = WatchEnd{Date: d.String(), Film: film}
		}
	}
	return first, last
}

// parseRating parses a rating cell. Blank cells are not ratings.
func parseRating(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseYear parses a release-year cell.
func parseYear(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	y, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return y, true
}
