package stats

import (
	"fmt"
	"sort"

	"github.com/screendapp/screend-server/internal/calendar"
	"github.com/screendapp/screend-server/internal/domain"
	"github.com/screendapp/screend-server/internal/schema"
)

// monthKey orders month buckets chronologically.
type monthKey struct {
	year  int
	month int
}

func (k monthKey) label() string {
	return calendar.Date{Year: k.year, Month: k.month, Day: 1}.MonthLabel()
}

// MonthlyActivity buckets dated watched records by month/year. Only
// observed months appear; the series is not densified.
func MonthlyActivity(watched domain.RecordSet, cols schema.Columns) []domain.MonthCount {
	counts := make(map[monthKey]int)
	for _, rec := range watched {
		d, ok := calendar.Parse(cols.Value(rec, schema.RoleDate))
		if !ok {
			continue
		}
		counts[monthKey{d.Year, d.Month}]++
	}

	out := make([]domain.MonthCount, 0, len(counts))
	for _, k := range sortedMonthKeys(counts) {
		out = append(out, domain.MonthCount{Month: k.label(), Count: counts[k]})
	}
	return out
}

// MonthlyRatings emits the mean diary rating per month/year bucket,
// over entries carrying both a valid date and a valid rating. Months
// with no contributing entries are skipped.
func MonthlyRatings(diary domain.RecordSet, cols schema.Columns) []domain.MonthRating {
	sums := make(map[monthKey]float64)
	counts := make(map[monthKey]int)
	for _, rec := range diary {
		d, ok := calendar.Parse(cols.Value(rec, schema.RoleDate))
		if !ok {
			continue
		}
		r, ok := parseRating(cols.Value(rec, schema.RoleRating))
		if !ok {
			continue
		}
		k := monthKey{d.Year, d.Month}
		sums[k] += r
		counts[k]++
	}

	out := make([]domain.MonthRating, 0, len(counts))
	for _, k := range sortedMonthKeys(counts) {
		out = append(out, domain.MonthRating{Label: k.label(), Rating: sums[k] / float64(counts[k])})
	}
	return out
}

// RatingDistribution is the histogram of valid ratings rounded to one
// decimal, ascending by rating value.
func RatingDistribution(ratings domain.RecordSet, cols schema.Columns) []domain.RatingBucket {
	counts := make(map[float64]int)
	for _, rec := range ratings {
		if v, ok := parseRating(cols.Value(rec, schema.RoleRating)); ok {
			counts[roundToTenth(v)]++
		}
	}

	values := make([]float64, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Float64s(values)

	out := make([]domain.RatingBucket, 0, len(values))
	for _, v := range values {
		out = append(out, domain.RatingBucket{Rating: ratingLabel(v), Count: counts[v]})
	}
	return out
}

// YearsData is the per-release-year watch count, densified from the
// minimum to the maximum observed year so renderers get a contiguous
// axis. It is nil when no year column resolves.
func YearsData(watched domain.RecordSet, cols schema.Columns) []domain.YearCount {
	yearKey, ok := cols.Lookup(schema.RoleYear)
	if !ok {
		return nil
	}

	counts := make(map[int]int)
	minYear, maxYear := 0, 0
	for _, rec := range watched {
		y, ok := parseYear(rec[yearKey])
		if !ok {
			continue
		}
		if len(counts) == 0 || y < minYear {
			minYear = y
		}
		if len(counts) == 0 || y > maxYear {
			maxYear = y
		}
		counts[y]++
	}
	if len(counts) == 0 {
		return nil
	}

	out := make([]domain.YearCount, 0, maxYear-minYear+1)
	for y := minYear; y <= maxYear; y++ {
		out = append(out, domain.YearCount{Year: y, Count: counts[y]})
	}
	return out
}

// DecadeRatings groups ratings by release decade and emits the mean
// rating and sample size per decade, ascending. It requires both the
// year and rating columns; nil otherwise.
func DecadeRatings(ratings domain.RecordSet, cols schema.Columns) []domain.DecadeRating {
	yearKey, ok := cols.Lookup(schema.RoleYear)
	if !ok {
		return nil
	}
	if _, ok := cols.Lookup(schema.RoleRating); !ok {
		return nil
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, rec := range ratings {
		y, ok := parseYear(rec[yearKey])
		if !ok {
			continue
		}
		r, ok := parseRating(cols.Value(rec, schema.RoleRating))
		if !ok {
			continue
		}
		decade := (y / 10) * 10
		sums[decade] += r
		counts[decade]++
	}

	decades := make([]int, 0, len(counts))
	for d := range counts {
		decades = append(decades, d)
	}
	sort.Ints(decades)

	out := make([]domain.DecadeRating, 0, len(decades))
	for _, d := range decades {
		out = append(out, domain.DecadeRating{
			Decade:        d,
			AverageRating: sums[d] / float64(counts[d]),
			Count:         counts[d],
		})
	}
	return out
}

// HeatmapValues counts diary entries per exact calendar date, sorted
// chronologically.
func HeatmapValues(diary domain.RecordSet, cols schema.Columns) []domain.DateCount {
	counts := make(map[calendar.Date]int)
	for _, rec := range diary {
		if d, ok := calendar.Parse(cols.Value(rec, schema.RoleDate)); ok {
			counts[d]++
		}
	}

	dates := make([]calendar.Date, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make([]domain.DateCount, 0, len(dates))
	for _, d := range dates {
		out = append(out, domain.DateCount{Date: d.String(), Count: counts[d]})
	}
	return out
}

// TopYears ranks release years by watch count, top 10 descending. When
// no year column resolves, the year of the watch date stands in.
func TopYears(watched domain.RecordSet, cols schema.Columns) []domain.NameCount {
	yearKey, hasYear := cols.Lookup(schema.RoleYear)

	c := newCounter()
	for _, rec := range watched {
		if hasYear {
			if y, ok := parseYear(rec[yearKey]); ok {
				c.Add(fmt.Sprintf("%d", y))
			}
			continue
		}
		if d, ok := calendar.Parse(cols.Value(rec, schema.RoleDate)); ok {
			c.Add(fmt.Sprintf("%d", d.Year))
		}
	}
	return c.Top(10)
}

// TopCountries ranks release countries recorded in the export itself,
// top 10 descending. Exports without a country column yield nothing;
// the enrichment-derived CountryData covers that case.
func TopCountries(watched domain.RecordSet, cols schema.Columns) []domain.NameCount {
	countryKey, ok := cols.Lookup(schema.RoleCountry)
	if !ok {
		return nil
	}

	c := newCounter()
	for _, rec := range watched {
		if v := rec[countryKey]; v != "" {
			c.Add(v)
		}
	}
	return c.Top(10)
}

func sortedMonthKeys[V any](m map[monthKey]V) []monthKey {
	keys := make([]monthKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})
	return keys
}

func roundToTenth(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}

func ratingLabel(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
