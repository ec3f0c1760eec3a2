package domain

// EnrichedFilm is a watched-category record augmented with metadata
// from the external movie database. Enriched films exist only after
// the enrichment task completes; until then all enrichment-derived
// metrics report their neutral placeholders.
type EnrichedFilm struct {
	// Record is the original watched record, carried so later metric
	// passes can join back on any source column.
	Record Record `json:"record"`

	Title string `json:"title"`
	Year  string `json:"year"`

	Director  string       `json:"director"`
	Genres    []string     `json:"genres"`
	Cast      []CastMember `json:"cast"`
	Countries []string     `json:"countries"` // ISO 3166-1 alpha-2 codes

	// Matched reports whether the title+year lookup found a canonical
	// entry. Unmatched films keep empty enrichment fields.
	Matched bool `json:"matched"`
}

// CastMember is one credited actor on an enriched film.
type CastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// EnrichmentStatus is the lifecycle state of the enrichment task.
type EnrichmentStatus string

// Enrichment task states. Error is reached only by a fault in the
// batch pipeline itself; individual lookup failures are absorbed.
const (
	EnrichmentIdle    EnrichmentStatus = "idle"
	EnrichmentLoading EnrichmentStatus = "loading"
	EnrichmentSuccess EnrichmentStatus = "success"
	EnrichmentError   EnrichmentStatus = "error"
)
