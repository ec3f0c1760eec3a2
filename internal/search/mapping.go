package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for search documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on titles/names with English stemming
//  2. Boosted relevance for direct title matches
//  3. Exact keyword matching for type, genre, and country filters
//  4. Numeric range queries for year and rating
//  5. Term vectors enabled on key fields for highlighting
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	// Use English analyzer as default for text fields
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Name field - primary search target, boosted
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = en.AnalyzerName
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	// Director - searchable on film documents
	directorFieldMapping := bleve.NewTextFieldMapping()
	directorFieldMapping.Analyzer = en.AnalyzerName
	directorFieldMapping.Store = true
	directorFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("director", directorFieldMapping)

	// Cast - searchable on film documents
	castFieldMapping := bleve.NewTextFieldMapping()
	castFieldMapping.Analyzer = en.AnalyzerName
	castFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("cast", castFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// Type - for filtering by document type
	typeFieldMapping := bleve.NewTextFieldMapping()
	typeFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("type", typeFieldMapping)

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Genres - keyword analyzer keeps compound names intact
	// (e.g., "Science Fiction")
	genresFieldMapping := bleve.NewTextFieldMapping()
	genresFieldMapping.Analyzer = keyword.Name
	genresFieldMapping.Store = true
	genresFieldMapping.IncludeTermVectors = true // For faceting
	docMapping.AddFieldMappingsAt("genres", genresFieldMapping)

	// Countries - ISO codes, exact matching only
	countriesFieldMapping := bleve.NewTextFieldMapping()
	countriesFieldMapping.Analyzer = keyword.Name
	countriesFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("countries", countriesFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	// Release year - for range filtering
	yearFieldMapping := bleve.NewNumericFieldMapping()
	yearFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("year", yearFieldMapping)

	// User rating - for range filtering and sorting
	ratingFieldMapping := bleve.NewNumericFieldMapping()
	ratingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("rating", ratingFieldMapping)

	// Film count - for sorting directors/actors
	filmCountFieldMapping := bleve.NewNumericFieldMapping()
	filmCountFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("film_count", filmCountFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
