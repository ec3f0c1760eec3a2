// Package domain contains the core entities for the Screend analytics pipeline.
package domain

import (
	"regexp"
	"strings"
)

// Record is one row of a tabular export, keyed by the literal column
// names as they appeared in the source file. All values are untyped
// strings at ingestion.
type Record map[string]string

// RecordSet is an ordered sequence of records for one export category.
// Record sets are immutable inputs to the derivation pipeline; nothing
// downstream mutates them.
type RecordSet []Record

// Keys returns the column names of the first record, or nil for an
// empty set. Column resolution is always based on the first record.
func (rs RecordSet) Keys() []string {
	if len(rs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(rs[0]))
	for k := range rs[0] {
		keys = append(keys, k)
	}
	return keys
}

// Category identifies one record-set category in an export.
type Category string

// Export categories. Absent categories default to empty record sets.
const (
	CategoryDiary      Category = "diary"
	CategoryWatched    Category = "watched"
	CategoryRatings    Category = "ratings"
	CategoryReviews    Category = "reviews"
	CategoryLikedFilms Category = "likedFilms"
)

// Export holds the five record sets of one uploaded export.
type Export struct {
	Diary      RecordSet `json:"diary"`
	Watched    RecordSet `json:"watched"`
	Ratings    RecordSet `json:"ratings"`
	Reviews    RecordSet `json:"reviews"`
	LikedFilms RecordSet `json:"liked_films"`
}

// Liked films live under a "likes/" folder in the export, so the
// category name varies by archive layout (likes/films, likes_films...).
var likedFilmsPattern = regexp.MustCompile(`(?i)likes[\\/_-]films$`)

// BuildExport maps raw category names (file names, case-insensitive) to
// the fixed export categories. Unrecognized sets are dropped; missing
// categories stay empty.
func BuildExport(sets map[string]RecordSet) Export {
	var e Export
	for name, rs := range sets {
		switch {
		case strings.EqualFold(name, "diary"):
			e.Diary = rs
		case strings.EqualFold(name, "watched"):
			e.Watched = rs
		case strings.EqualFold(name, "ratings"):
			e.Ratings = rs
		case strings.EqualFold(name, "reviews"):
			e.Reviews = rs
		case likedFilmsPattern.MatchString(name):
			e.LikedFilms = rs
		}
	}
	return e
}
