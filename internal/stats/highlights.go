package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/screendapp/screend-server/internal/calendar"
	"github.com/screendapp/screend-server/internal/domain"
	"github.com/screendapp/screend-server/internal/schema"
)

// MostRewatched is the film with the most rewatch-flagged diary
// entries. Ties keep the first-encountered title; zero rewatches
// yields the N/A placeholder.
func MostRewatched(diary domain.RecordSet, cols schema.Columns) domain.NameCount {
	rewatchKey, ok := cols.Lookup(schema.RoleRewatch)
	if !ok {
		return domain.NameCount{Name: "N/A"}
	}

	c := newCounter()
	for _, rec := range diary {
		if strings.EqualFold(rec[rewatchKey], "yes") {
			c.Add(cols.Value(rec, schema.RoleFilm))
		}
	}
	if c.Len() == 0 {
		return domain.NameCount{Name: "N/A"}
	}

	name, count := c.Max()
	return domain.NameCount{Name: name, Count: count}
}

// RewatchRatioOf splits the diary into rewatches and first watches.
func RewatchRatioOf(diary domain.RecordSet, cols schema.Columns) domain.RewatchRatio {
	if len(diary) == 0 {
		return domain.RewatchRatio{}
	}

	rewatchKey, ok := cols.Lookup(schema.RoleRewatch)
	if !ok {
		return domain.RewatchRatio{New: len(diary)}
	}

	var rewatches int
	for _, rec := range diary {
		if strings.EqualFold(rec[rewatchKey], "yes") {
			rewatches++
		}
	}
	return domain.RewatchRatio{Rewatches: rewatches, New: len(diary) - rewatches}
}

// GoToRatingOf is the most frequently given rating, to one decimal.
func GoToRatingOf(ratings domain.RecordSet, cols schema.Columns) domain.GoToRating {
	c := newCounter()
	for _, rec := range ratings {
		if v, ok := parseRating(cols.Value(rec, schema.RoleRating)); ok {
			c.Add(ratingLabel(roundToTenth(v)))
		}
	}
	if c.Len() == 0 {
		return domain.GoToRating{Rating: "N/A"}
	}

	label, count := c.Max()
	return domain.GoToRating{Rating: label, Count: count}
}

// FavoriteAndStinkerFilms returns every rating record at the observed
// maximum and minimum respectively, in record order.
func FavoriteAndStinkerFilms(ratings domain.RecordSet, cols schema.Columns) (favorites, stinkers []domain.RatedFilm) {
	type entry struct {
		name   string
		rating float64
	}
	var (
		valid   []entry
		lo, hi  float64
		haveAny bool
	)
	for _, rec := range ratings {
		v, ok := parseRating(cols.Value(rec, schema.RoleRating))
		if !ok {
			continue
		}
		valid = append(valid, entry{name: cols.Value(rec, schema.RoleFilm), rating: v})
		if !haveAny {
			lo, hi = v, v
			haveAny = true
			continue
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}

	for _, e := range valid {
		if e.rating == hi {
			favorites = append(favorites, domain.RatedFilm{Name: e.name, Rating: e.rating})
		}
		if e.rating == lo {
			stinkers = append(stinkers, domain.RatedFilm{Name: e.name, Rating: e.rating})
		}
	}
	return favorites, stinkers
}

// AverageLoggingLag is the mean number of days between watching a film
// and logging it, over diary entries carrying both dates. Entries
// logged before they were watched are data anomalies and are excluded,
// not clamped.
func AverageLoggingLag(diary domain.RecordSet, cols schema.Columns) float64 {
	loggedKey, ok := cols.Lookup(schema.RoleLogged)
	if !ok {
		return 0
	}

	var (
		sum   int
		count int
	)
	for _, rec := range diary {
		watched, ok := calendar.Parse(cols.Value(rec, schema.RoleDate))
		if !ok {
			continue
		}
		logged, ok := calendar.Parse(rec[loggedKey])
		if !ok {
			continue
		}
		lag := watched.DaysUntil(logged)
		if lag < 0 {
			continue
		}
		sum += lag
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

// ProlificMonth is the monthly activity bucket with the highest count.
func ProlificMonth(monthly []domain.MonthCount) domain.MonthCount {
	if len(monthly) == 0 {
		return domain.MonthCount{Month: "N/A"}
	}

	best := monthly[0]
	for _, m := range monthly[1:] {
		if m.Count > best.Count {
			best = m
		}
	}
	return best
}

// BusiestDay is the weekday with the most diary entries across all
// history.
func BusiestDay(diary domain.RecordSet, cols schema.Columns) domain.DayCount {
	c := newCounter()
	for _, rec := range diary {
		if d, ok := calendar.Parse(cols.Value(rec, schema.RoleDate)); ok {
			c.Add(d.Weekday().String())
		}
	}
	if c.Len() == 0 {
		return domain.DayCount{Day: "N/A"}
	}

	day, count := c.Max()
	return domain.DayCount{Day: day, Count: count}
}

// BiggestRatingSwing finds the film whose rating moved the most
// between its earliest and latest dated, rated diary entries. It is
// nil when no film has two such entries or the largest move is zero.
func BiggestRatingSwing(diary domain.RecordSet, cols schema.Columns) *domain.RatingChange {
	type span struct {
		firstDate  calendar.Date
		latestDate calendar.Date
		first      float64
		latest     float64
		entries    int
	}

	var order []string
	spans := make(map[string]*span)
	for _, rec := range diary {
		d, ok := calendar.Parse(cols.Value(rec, schema.RoleDate))
		if !ok {
			continue
		}
		r, ok := parseRating(cols.Value(rec, schema.RoleRating))
		if !ok {
			continue
		}
		name := cols.Value(rec, schema.RoleFilm)

		s, seen := spans[name]
		if !seen {
			spans[name] = &span{firstDate: d, latestDate: d, first: r, latest: r, entries: 1}
			order = append(order, name)
			continue
		}
		s.entries++
		if d.Before(s.firstDate) {
			s.firstDate, s.first = d, r
		}
		if d.After(s.latestDate) {
			s.latestDate, s.latest = d, r
		}
	}

	var best *domain.RatingChange
	for _, name := range order {
		s := spans[name]
		if s.entries < 2 {
			continue
		}
		change := math.Abs(s.latest - s.first)
		if best == nil || change > best.Change {
			best = &domain.RatingChange{Name: name, Change: change, First: s.first, Latest: s.latest}
		}
	}
	if best == nil || best.Change == 0 {
		return nil
	}
	return best
}

// LongestStreak is the longest run of consecutive calendar days among
// the distinct diary watch dates.
func LongestStreak(diary domain.RecordSet, cols schema.Columns) int {
	seen := make(map[calendar.Date]struct{})
	for _, rec := range diary {
		if d, ok := calendar.Parse(cols.Value(rec, schema.RoleDate)); ok {
			seen[d] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return 0
	}

	dates := make([]calendar.Date, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].DaysUntil(dates[i]) == 1 {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// BingeWatchCount is the most diary entries sharing one exact watch
// date.
func BingeWatchCount(diary domain.RecordSet, cols schema.Columns) int {
	c := newCounter()
	for _, rec := range diary {
		if d, ok := calendar.Parse(cols.Value(rec, schema.RoleDate)); ok {
			c.Add(d.String())
		}
	}
	if c.Len() == 0 {
		return 0
	}
	_, count := c.Max()
	return count
}

// PrimeTimeYear is the rounded mean release year across the diary, or
// "N/A" when no year column resolves or no year parses.
func PrimeTimeYear(diary domain.RecordSet, cols schema.Columns) string {
	yearKey, ok := cols.Lookup(schema.RoleYear)
	if !ok {
		return "N/A"
	}

	var (
		sum   int
		count int
	)
	for _, rec := range diary {
		if y, ok := parseYear(rec[yearKey]); ok {
			sum += y
			count++
		}
	}
	if count == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", int(math.Round(float64(sum)/float64(count))))
}

// AverageSentiment scores the diary comments and review texts as one
// blob and reports the normalized intensity in [-1, 1]. It is neutral
// when neither text column resolves.
func (e *Engine) AverageSentiment(diary domain.RecordSet, diaryCols schema.Columns, reviews domain.RecordSet, reviewCols schema.Columns) float64 {
	commentKey, haveComments := diaryCols.Lookup(schema.RoleComment)
	reviewKey, haveReviews := reviewCols.Lookup(schema.RoleReview)
	if !haveComments && !haveReviews {
		return 0
	}

	var blob strings.Builder
	if haveComments {
		for _, rec := range diary {
			blob.WriteString(rec[commentKey])
			blob.WriteByte(' ')
		}
	}
	if haveReviews {
		for _, rec := range reviews {
			blob.WriteString(rec[reviewKey])
			blob.WriteByte(' ')
		}
	}
	return e.sentiment.Intensity(blob.String())
}
