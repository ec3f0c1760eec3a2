// Package search provides full-text search over an uploaded export
// using Bleve. It enables federated search across films, directors,
// and actors with faceted filtering and fuzzy matching. The index is
// held in memory and rebuilt whenever a new export is uploaded.
package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/screendapp/screend-server/internal/domain"
	"github.com/screendapp/screend-server/internal/schema"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeFilm     DocType = "film"
	DocTypeDirector DocType = "director"
	DocTypeActor    DocType = "actor"
)

// SearchDocument is the unified document structure for the Bleve index.
// All searchable entities are indexed as SearchDocuments with type
// discrimination.
//
// Design note: We denormalize director and cast names into film
// documents to enable fast single-query search across all related
// content. The trade-off is storage space for query performance - a
// fine exchange for an index that never outgrows one person's diary.
type SearchDocument struct {
	// Identity
	ID   string  `json:"id"`   // Original entity ID (film_xxx, director_xxx, etc.)
	Type DocType `json:"type"` // Discriminator for result grouping

	// Primary searchable text (different meaning per type)
	// Film: title, Director/Actor: person name
	Name string `json:"name"`

	// Film-specific fields (empty for other types)
	Director  string   `json:"director,omitempty"` // Denormalized for search
	Cast      []string `json:"cast,omitempty"`     // Denormalized for search
	Genres    []string `json:"genres,omitempty"`
	Countries []string `json:"countries,omitempty"` // ISO 3166-1 alpha-2

	// Numeric fields for range queries and sorting
	Year      int     `json:"year,omitempty"`       // (films only)
	Rating    float64 `json:"rating,omitempty"`     // User's rating (films only)
	FilmCount int     `json:"film_count,omitempty"` // (directors/actors only)
}

// ToMap converts the document to a map with lowercase field names.
// This ensures field names match the Bleve index mapping.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":   d.ID,
		"type": string(d.Type),
		"name": d.Name,
	}

	// Optional fields - only add if non-empty
	if d.Director != "" {
		m["director"] = d.Director
	}
	if len(d.Cast) > 0 {
		m["cast"] = d.Cast
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}
	if len(d.Countries) > 0 {
		m["countries"] = d.Countries
	}
	if d.Year > 0 {
		m["year"] = d.Year
	}
	if d.Rating > 0 {
		m["rating"] = d.Rating
	}
	if d.FilmCount > 0 {
		m["film_count"] = d.FilmCount
	}

	return m
}

// FilmDocument converts one watched record to a SearchDocument.
// Title and year come through the resolved columns; the rating, when
// present, comes from the matching ratings record.
func FilmDocument(id string, rec domain.Record, cols schema.Columns, rating float64) *SearchDocument {
	doc := &SearchDocument{
		ID:     id,
		Type:   DocTypeFilm,
		Name:   cols.Value(rec, schema.RoleFilm),
		Rating: rating,
	}
	if y, err := strconv.Atoi(cols.Value(rec, schema.RoleYear)); err == nil {
		doc.Year = y
	}
	return doc
}

// EnrichedFilmDocument converts an enriched film to a SearchDocument.
// Unmatched films still index under their title so search keeps
// working when a lookup came up empty.
func EnrichedFilmDocument(id string, film domain.EnrichedFilm) *SearchDocument {
	doc := &SearchDocument{
		ID:        id,
		Type:      DocTypeFilm,
		Name:      film.Title,
		Director:  film.Director,
		Genres:    film.Genres,
		Countries: film.Countries,
	}
	if y, err := strconv.Atoi(film.Year); err == nil {
		doc.Year = y
	}
	for _, c := range film.Cast {
		doc.Cast = append(doc.Cast, c.Name)
	}
	return doc
}

// PersonDocument converts a director or actor name to a SearchDocument.
// The ID is derived from the name so reindexing the same person is an
// update rather than a duplicate.
func PersonDocument(docType DocType, name string, filmCount int) *SearchDocument {
	return &SearchDocument{
		ID:        fmt.Sprintf("%s_%s", docType, slugify(name)),
		Type:      docType,
		Name:      name,
		FilmCount: filmCount,
	}
}

// DocumentsFromExport builds the full document set for one upload:
// one film document per watched record, plus a director and actor
// document per distinct person from the enriched films. The enriched
// slice may be nil before enrichment has run.
func DocumentsFromExport(watched domain.RecordSet, cols schema.Columns, ratings map[string]float64, enriched []domain.EnrichedFilm) []*SearchDocument {
	docs := make([]*SearchDocument, 0, len(watched))

	if enriched != nil {
		directors := make(map[string]int)
		actors := make(map[string]int)
		var directorOrder, actorOrder []string

		for i, film := range enriched {
			id := fmt.Sprintf("film_%d", i)
			doc := EnrichedFilmDocument(id, film)
			if doc.Rating == 0 {
				doc.Rating = ratings[strings.ToLower(film.Title)]
			}
			docs = append(docs, doc)

			if film.Director != "" {
				if directors[film.Director] == 0 {
					directorOrder = append(directorOrder, film.Director)
				}
				directors[film.Director]++
			}
			for _, c := range film.Cast {
				if actors[c.Name] == 0 {
					actorOrder = append(actorOrder, c.Name)
				}
				actors[c.Name]++
			}
		}

		for _, name := range directorOrder {
			docs = append(docs, PersonDocument(DocTypeDirector, name, directors[name]))
		}
		for _, name := range actorOrder {
			docs = append(docs, PersonDocument(DocTypeActor, name, actors[name]))
		}
		return docs
	}

	for i, rec := range watched {
		title := cols.Value(rec, schema.RoleFilm)
		if title == "" {
			continue
		}
		docs = append(docs, FilmDocument(fmt.Sprintf("film_%d", i), rec, cols, ratings[strings.ToLower(title)]))
	}
	return docs
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, s)
}
