// Package schema infers which literal column name serves each semantic
// role in a record set. Export column names vary across versions and
// locales ("Name" vs "Film", "Watched Date" vs "Date"), so every
// metric resolves its columns through ordered pattern rules instead of
// hardcoded lookups.
package schema

import (
	"regexp"
	"sort"

	"github.com/screendapp/screend-server/internal/domain"
)

// Role is a semantic column role used by the derivation engine.
type Role string

// Column roles.
const (
	RoleFilm    Role = "film"
	RoleDate    Role = "date"
	RoleLogged  Role = "logged"
	RoleRating  Role = "rating"
	RoleRewatch Role = "rewatch"
	RoleYear    Role = "year"
	RoleCountry Role = "country"
	RoleComment Role = "comment"
	RoleReview  Role = "review"
)

// Rules for each role, in priority order. The first rule that matches
// any key wins; rules are tested case-insensitively against every key
// of the record set's first record.
var roleRules = map[Role][]*regexp.Regexp{
	RoleFilm: {
		regexp.MustCompile(`(?i)film|movie`),
	},
	RoleDate: {
		regexp.MustCompile(`(?i)watched.*date`),
		regexp.MustCompile(`(?i)date`),
	},
	// The diary's plain "Date" column records when the entry was
	// logged, as opposed to "Watched Date".
	RoleLogged: {
		regexp.MustCompile(`(?i)^date$`),
	},
	RoleRating: {
		regexp.MustCompile(`(?i)rating`),
	},
	RoleRewatch: {
		regexp.MustCompile(`(?i)rewatch`),
	},
	RoleYear: {
		regexp.MustCompile(`(?i)year`),
	},
	RoleCountry: {
		regexp.MustCompile(`(?i)country`),
	},
	RoleComment: {
		regexp.MustCompile(`(?i)comment|entry|notes|text|review`),
	},
	RoleReview: {
		regexp.MustCompile(`(?i)review|text`),
	},
}

// Fallbacks returned by Columns.Get for roles whose metric contract
// names a default literal column.
var roleFallbacks = map[Role]string{
	RoleFilm:   "Name",
	RoleDate:   "Watched Date",
	RoleRating: "Rating",
}

// Resolve returns the literal column name bound to the first matching
// rule, testing keys in deterministic (sorted) order. It reports
// ok=false for an empty record set or when no rule matches.
func Resolve(records domain.RecordSet, rules []*regexp.Regexp) (string, bool) {
	keys := records.Keys()
	if len(keys) == 0 {
		return "", false
	}
	sort.Strings(keys)

	for _, rule := range rules {
		for _, key := range keys {
			if rule.MatchString(key) {
				return key, true
			}
		}
	}
	return "", false
}

// ResolveRole resolves one role against a record set.
func ResolveRole(records domain.RecordSet, role Role) (string, bool) {
	return Resolve(records, roleRules[role])
}

// Columns is the resolved role-to-column mapping for one record set.
// Resolution is per record set: the same role may bind to different
// literal names in diary vs watched vs ratings.
type Columns struct {
	bound map[Role]string
}

// ResolveColumns resolves every role against one record set.
func ResolveColumns(records domain.RecordSet) Columns {
	bound := make(map[Role]string, len(roleRules))
	for role := range roleRules {
		if name, ok := ResolveRole(records, role); ok {
			bound[role] = name
		}
	}
	return Columns{bound: bound}
}

// Lookup returns the resolved column for a role, with no fallback.
func (c Columns) Lookup(role Role) (string, bool) {
	name, ok := c.bound[role]
	return name, ok
}

// Get returns the resolved column for a role, falling back to the
// role's documented default literal name when resolution missed.
// Roles without a documented default return "".
func (c Columns) Get(role Role) string {
	if name, ok := c.bound[role]; ok {
		return name
	}
	return roleFallbacks[role]
}

// Value reads the role's column from a record, applying fallbacks.
func (c Columns) Value(rec domain.Record, role Role) string {
	return rec[c.Get(role)]
}
