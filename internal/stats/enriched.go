package stats

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/screendapp/screend-server/internal/domain"
	"github.com/screendapp/screend-server/internal/schema"
)

// Rankings over enriched films surface a handful of entries; the
// dashboard renders five rows per tile.
const rankingSize = 5

// minStarFilms is the minimum rated appearances for all-star
// eligibility.
const minStarFilms = 3

// TopDirectors ranks directors by enriched-film count, descending.
func TopDirectors(enriched []domain.EnrichedFilm) []domain.NameCount {
	c := newCounter()
	for _, film := range enriched {
		if film.Director != "" {
			c.Add(film.Director)
		}
	}
	return c.Top(rankingSize)
}

// MostWatchedStars ranks actors by enriched-film appearances,
// descending. The profile path sticks from the first appearance.
func MostWatchedStars(enriched []domain.EnrichedFilm) []domain.ActorCount {
	c := newCounter()
	profiles := make(map[string]string)
	for _, film := range enriched {
		for _, member := range film.Cast {
			c.Add(member.Name)
			if _, ok := profiles[member.Name]; !ok {
				profiles[member.Name] = member.ProfilePath
			}
		}
	}

	top := c.Top(rankingSize)
	out := make([]domain.ActorCount, 0, len(top))
	for _, entry := range top {
		out = append(out, domain.ActorCount{
			Name:        entry.Name,
			ProfilePath: profiles[entry.Name],
			Count:       entry.Count,
		})
	}
	return out
}

// AllStarCast ranks actors appearing in at least minStarFilms enriched
// and rated films by their mean rating, descending, top five. Ratings
// join on film title; the first rating per title wins.
func AllStarCast(enriched []domain.EnrichedFilm, ratings domain.RecordSet, ratingCols schema.Columns) []domain.ActorRating {
	ratingByTitle := make(map[string]float64)
	for _, rec := range ratings {
		v, ok := parseRating(ratingCols.Value(rec, schema.RoleRating))
		if !ok {
			continue
		}
		title := ratingCols.Value(rec, schema.RoleFilm)
		if _, seen := ratingByTitle[title]; !seen {
			ratingByTitle[title] = v
		}
	}

	type tally struct {
		sum     float64
		count   int
		profile string
	}
	var order []string
	tallies := make(map[string]*tally)
	for _, film := range enriched {
		rating, rated := ratingByTitle[film.Title]
		if !rated {
			continue
		}
		for _, member := range film.Cast {
			t, seen := tallies[member.Name]
			if !seen {
				t = &tally{profile: member.ProfilePath}
				tallies[member.Name] = t
				order = append(order, member.Name)
			}
			t.sum += rating
			t.count++
		}
	}

	out := make([]domain.ActorRating, 0, len(order))
	for _, name := range order {
		t := tallies[name]
		if t.count < minStarFilms {
			continue
		}
		out = append(out, domain.ActorRating{
			Name:          name,
			ProfilePath:   t.profile,
			AverageRating: t.sum / float64(t.count),
			Count:         t.count,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageRating > out[j].AverageRating
	})
	if len(out) > rankingSize {
		out = out[:rankingSize]
	}
	return out
}

var regionNames = display.Regions(language.AmericanEnglish)

// CountryData counts enriched films per production country and reports
// the map keyed by ISO code along with the maximum count, which
// renderers use as the color-scale ceiling.
func CountryData(enriched []domain.EnrichedFilm) (map[string]*domain.CountryCount, int) {
	counts := make(map[string]*domain.CountryCount)
	maxCount := 0
	for _, film := range enriched {
		for _, code := range film.Countries {
			cc, ok := counts[code]
			if !ok {
				cc = &domain.CountryCount{Code: code, Name: countryName(code)}
				counts[code] = cc
			}
			cc.Count++
			maxCount = max(maxCount, cc.Count)
		}
	}
	return counts, maxCount
}

// countryName resolves an ISO 3166-1 alpha-2 code to its English
// display name, falling back to the raw code.
func countryName(code string) string {
	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}
	if name := regionNames.Name(region); name != "" {
		return name
	}
	return code
}
