package domain

// Stats is the derived-metrics contract handed to the presentation
// layer. It is recomputed in full on every upload; enrichment-derived
// fields are filled in asynchronously once the enrichment task
// succeeds. Field shapes are stable; renderers depend on them.
type Stats struct {
	TotalWatched   int     `json:"total_watched"`
	RewatchedCount int     `json:"rewatched_count"`
	LovedCount     int     `json:"loved_count"`
	TotalRated     int     `json:"total_rated"`
	AverageRating  float64 `json:"average_rating"`
	ReviewsWritten int     `json:"reviews_written"`

	FirstWatchDate string `json:"first_watch_date"`
	FirstWatchFilm string `json:"first_watch_film"`
	LastWatchDate  string `json:"last_watch_date"`
	LastWatchFilm  string `json:"last_watch_film"`

	MonthlyActivity    []MonthCount   `json:"monthly_activity"`
	MonthlyRatings     []MonthRating  `json:"monthly_ratings"`
	RatingDistribution []RatingBucket `json:"rating_distribution"`
	YearsData          []YearCount    `json:"years_data"`
	DecadeRatings      []DecadeRating `json:"decade_ratings"`
	HeatmapValues      []DateCount    `json:"heatmap_values"`
	TopYears           []NameCount    `json:"top_years"`
	TopCountriesLocal  []NameCount    `json:"top_countries_local"`

	MostRewatched      NameCount     `json:"most_rewatched"`
	RewatchRatio       RewatchRatio  `json:"rewatch_ratio"`
	GoToRating         GoToRating    `json:"go_to_rating"`
	FavoriteFilms      []RatedFilm   `json:"favorite_films"`
	StinkerFilms       []RatedFilm   `json:"stinker_films"`
	AverageLoggingLag  float64       `json:"average_logging_lag"`
	ProlificMonth      MonthCount    `json:"prolific_month"`
	BusiestDay         DayCount      `json:"busiest_day"`
	BiggestRatingSwing *RatingChange `json:"biggest_rating_swing"`
	LongestStreak      int           `json:"longest_streak"`
	BingeWatchCount    int           `json:"binge_watch_count"`
	PrimeTimeYear      string        `json:"prime_time_year"`
	AverageSentiment   float64       `json:"average_sentiment"`

	// Enrichment-derived. Empty / nil until enrichment succeeds.
	TopDirectors     []NameCount              `json:"top_directors"`
	MostWatchedStars []ActorCount             `json:"most_watched_stars"`
	AllStarCast      []ActorRating            `json:"all_star_cast"`
	CountryData      map[string]*CountryCount `json:"country_data"`
	MaxCountryCount  int                      `json:"max_country_count"`

	EnrichmentStatus   EnrichmentStatus `json:"enrichment_status"`
	EnrichmentProgress int              `json:"enrichment_progress"`
}

// MonthCount is one month/year activity bucket ("Jan 2024").
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthRating is the mean rating for one month/year bucket.
type MonthRating struct {
	Label  string  `json:"label"`
	Rating float64 `json:"rating"`
}

// RatingBucket is one histogram bin of the rating distribution,
// labeled by the rating rounded to one decimal ("3.5").
type RatingBucket struct {
	Rating string `json:"rating"`
	Count  int    `json:"count"`
}

// YearCount is the watch count for one release year. The years series
// is dense: unobserved years between min and max carry a zero count.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// DecadeRating is the mean rating and sample size for one decade.
type DecadeRating struct {
	Decade        int     `json:"decade"`
	AverageRating float64 `json:"average_rating"`
	Count         int     `json:"count"`
}

// DateCount is the diary entry count for one exact calendar date,
// keyed by its YYYY-MM-DD form.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// NameCount is a generic name-to-count ranking entry.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DayCount is the total diary entry count for one weekday name.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// RewatchRatio splits diary entries into rewatches and first watches.
type RewatchRatio struct {
	Rewatches int `json:"rewatches"`
	New       int `json:"new"`
}

// GoToRating is the most frequently given rating value. Rating is the
// one-decimal label, or "N/A" when no valid ratings exist.
type GoToRating struct {
	Rating string `json:"rating"`
	Count  int    `json:"count"`
}

// RatedFilm pairs a film name with its rating, used for the favorite
// and stinker lists.
type RatedFilm struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

// RatingChange describes the film whose rating moved the most between
// its earliest and latest diary entries.
type RatingChange struct {
	Name   string  `json:"name"`
	Change float64 `json:"change"`
	First  float64 `json:"first"`
	Latest float64 `json:"latest"`
}

// ActorCount is an appearance-count ranking entry for one actor.
type ActorCount struct {
	Name        string `json:"name"`
	ProfilePath string `json:"profile_path,omitempty"`
	Count       int    `json:"count"`
}

// ActorRating is a mean-rating ranking entry for one actor.
type ActorRating struct {
	Name          string  `json:"name"`
	ProfilePath   string  `json:"profile_path,omitempty"`
	AverageRating float64 `json:"avg_rating"`
	Count         int     `json:"count"`
}

// CountryCount is the enriched-film count for one production country.
type CountryCount struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}
