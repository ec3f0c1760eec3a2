package search

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screendapp/screend-server/internal/domain"
	"github.com/screendapp/screend-server/internal/schema"
)

// setupTestIndex creates an in-memory search index for testing.
func setupTestIndex(t *testing.T) *SearchIndex {
	t.Helper()

	index, err := NewSearchIndex(Options{Logger: nil})
	require.NoError(t, err)

	t.Cleanup(func() { _ = index.Close() })

	return index
}

func TestNewSearchIndex(t *testing.T) {
	index := setupTestIndex(t)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_IndexDocument(t *testing.T) {
	index := setupTestIndex(t)

	doc := &SearchDocument{
		ID:       "film_1",
		Type:     DocTypeFilm,
		Name:     "Heat",
		Director: "Michael Mann",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearchIndex_IndexDocuments_Batch(t *testing.T) {
	index := setupTestIndex(t)

	docs := []*SearchDocument{
		{ID: "film_1", Type: DocTypeFilm, Name: "Heat"},
		{ID: "film_2", Type: DocTypeFilm, Name: "Casino"},
		{ID: "film_3", Type: DocTypeFilm, Name: "Thief"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSearchIndex_DeleteDocument(t *testing.T) {
	index := setupTestIndex(t)

	doc := &SearchDocument{
		ID:   "film_1",
		Type: DocTypeFilm,
		Name: "Heat",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	err = index.DeleteDocument("film_1")
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_Search_Basic(t *testing.T) {
	index := setupTestIndex(t)

	docs := []*SearchDocument{
		{ID: "film_1", Type: DocTypeFilm, Name: "Heat", Director: "Michael Mann"},
		{ID: "film_2", Type: DocTypeFilm, Name: "Heat 2", Director: "Michael Mann"},
		{ID: "film_3", Type: DocTypeFilm, Name: "Casino", Director: "Martin Scorsese"},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{
		Query: "Heat",
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)
	assert.Len(t, result.Hits, 2)
}

func TestSearchIndex_Search_ByType(t *testing.T) {
	index := setupTestIndex(t)

	docs := []*SearchDocument{
		{ID: "film_1", Type: DocTypeFilm, Name: "Heat"},
		{ID: "director_michael-mann", Type: DocTypeDirector, Name: "Michael Mann", FilmCount: 3},
		{ID: "actor_al-pacino", Type: DocTypeActor, Name: "Al Pacino", FilmCount: 5},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	// Films only
	result, err := index.Search(ctx, SearchParams{
		Query: "",
		Types: []string{string(DocTypeFilm)},
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
	assert.Equal(t, "film_1", result.Hits[0].ID)
}

func TestSearchIndex_Search_TitleNotDirector(t *testing.T) {
	index := setupTestIndex(t)

	docs := []*SearchDocument{
		{ID: "film_1", Type: DocTypeFilm, Name: "Heat", Director: "Michael Mann"},
		{ID: "director_michael-mann", Type: DocTypeDirector, Name: "Michael Mann", FilmCount: 1},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	// "Mann" should surface the director document, not every film
	// he directed.
	result, err := index.Search(ctx, SearchParams{
		Query: "Mann",
		Limit: 10,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), result.Total)
	assert.Equal(t, DocTypeDirector, result.Hits[0].Type)
	assert.Equal(t, 1, result.Hits[0].FilmCount)
}

func TestSearchIndex_Search_Prefix(t *testing.T) {
	index := setupTestIndex(t)

	doc := &SearchDocument{
		ID:   "film_1",
		Type: DocTypeFilm,
		Name: "Magnolia",
	}

	err := index.IndexDocument(doc)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{
		Query: "Magn", // Prefix of Magnolia
		Limit: 10,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Total, uint64(1))
}

func TestSearchIndex_Search_GenreFilter(t *testing.T) {
	index := setupTestIndex(t)

	docs := []*SearchDocument{
		{ID: "film_1", Type: DocTypeFilm, Name: "Heat", Genres: []string{"Crime", "Drama"}},
		{ID: "film_2", Type: DocTypeFilm, Name: "Alien", Genres: []string{"Science Fiction", "Horror"}},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{
		Query:  "",
		Genres: []string{"Crime"},
		Limit:  10,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), result.Total)
	assert.Equal(t, "film_1", result.Hits[0].ID)

	// Compound genre names must match whole
	result, err = index.Search(ctx, SearchParams{
		Query:  "",
		Genres: []string{"Science Fiction"},
		Limit:  10,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), result.Total)
	assert.Equal(t, "film_2", result.Hits[0].ID)
}

func TestSearchIndex_Search_YearRange(t *testing.T) {
	index := setupTestIndex(t)

	docs := []*SearchDocument{
		{ID: "film_1", Type: DocTypeFilm, Name: "Thief", Year: 1981},
		{ID: "film_2", Type: DocTypeFilm, Name: "Heat", Year: 1995},
		{ID: "film_3", Type: DocTypeFilm, Name: "Collateral", Year: 2004},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{
		Query:   "",
		MinYear: 1990,
		MaxYear: 2000,
		Limit:   10,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), result.Total)
	assert.Equal(t, "film_2", result.Hits[0].ID)
}

func TestSearchIndex_Search_MinRating(t *testing.T) {
	index := setupTestIndex(t)

	docs := []*SearchDocument{
		{ID: "film_1", Type: DocTypeFilm, Name: "Heat", Rating: 5},
		{ID: "film_2", Type: DocTypeFilm, Name: "Grown Ups 2", Rating: 1},
	}

	err := index.IndexDocuments(docs)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := index.Search(ctx, SearchParams{
		Query:     "",
		MinRating: 4,
		Limit:     10,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(1), result.Total)
	assert.Equal(t, "film_1", result.Hits[0].ID)
	assert.Equal(t, 5.0, result.Hits[0].Rating)
}

func TestSearchIndex_Rebuild(t *testing.T) {
	index := setupTestIndex(t)

	err := index.IndexDocument(&SearchDocument{ID: "film_1", Type: DocTypeFilm, Name: "Heat"})
	require.NoError(t, err)

	// Rebuild replaces the whole document set
	err = index.Rebuild([]*SearchDocument{
		{ID: "film_1", Type: DocTypeFilm, Name: "Casino"},
		{ID: "film_2", Type: DocTypeFilm, Name: "Thief"},
	})
	require.NoError(t, err)

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	ctx := context.Background()
	result, err := index.Search(ctx, SearchParams{Query: "Heat", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(0), result.Total)
}

func TestFilmDocument(t *testing.T) {
	rec := domain.Record{"Name": "Heat", "Year": "1995"}
	cols := schema.ResolveColumns(domain.RecordSet{rec})

	doc := FilmDocument("film_0", rec, cols, 4.5)

	assert.Equal(t, "film_0", doc.ID)
	assert.Equal(t, DocTypeFilm, doc.Type)
	assert.Equal(t, "Heat", doc.Name)
	assert.Equal(t, 1995, doc.Year)
	assert.Equal(t, 4.5, doc.Rating)
}

func TestEnrichedFilmDocument(t *testing.T) {
	film := domain.EnrichedFilm{
		Title:     "Heat",
		Year:      "1995",
		Director:  "Michael Mann",
		Genres:    []string{"Crime", "Drama"},
		Countries: []string{"US"},
		Cast: []domain.CastMember{
			{Name: "Al Pacino"},
			{Name: "Robert De Niro"},
		},
		Matched: true,
	}

	doc := EnrichedFilmDocument("film_0", film)

	assert.Equal(t, "Heat", doc.Name)
	assert.Equal(t, 1995, doc.Year)
	assert.Equal(t, "Michael Mann", doc.Director)
	assert.Equal(t, []string{"Al Pacino", "Robert De Niro"}, doc.Cast)
	assert.Equal(t, []string{"Crime", "Drama"}, doc.Genres)
	assert.Equal(t, []string{"US"}, doc.Countries)
}

func TestPersonDocument(t *testing.T) {
	doc := PersonDocument(DocTypeDirector, "Michael Mann", 3)

	assert.Equal(t, "director_michael-mann", doc.ID)
	assert.Equal(t, DocTypeDirector, doc.Type)
	assert.Equal(t, "Michael Mann", doc.Name)
	assert.Equal(t, 3, doc.FilmCount)
}

func TestDocumentsFromExport_Unenriched(t *testing.T) {
	watched := domain.RecordSet{
		{"Name": "Heat", "Year": "1995"},
		{"Name": "Casino", "Year": "1995"},
		{"Name": "", "Year": "2000"},
	}
	cols := schema.ResolveColumns(watched)
	ratings := map[string]float64{"heat": 4.5}

	docs := DocumentsFromExport(watched, cols, ratings, nil)

	require.Len(t, docs, 2)
	assert.Equal(t, "Heat", docs[0].Name)
	assert.Equal(t, 4.5, docs[0].Rating)
	assert.Equal(t, "Casino", docs[1].Name)
	assert.Equal(t, 0.0, docs[1].Rating)
}

func TestDocumentsFromExport_Enriched(t *testing.T) {
	watched := domain.RecordSet{
		{"Name": "Heat", "Year": "1995"},
		{"Name": "The Insider", "Year": "1999"},
	}
	cols := schema.ResolveColumns(watched)
	enriched := []domain.EnrichedFilm{
		{
			Title: "Heat", Year: "1995", Director: "Michael Mann",
			Cast:    []domain.CastMember{{Name: "Al Pacino"}, {Name: "Robert De Niro"}},
			Matched: true,
		},
		{
			Title: "The Insider", Year: "1999", Director: "Michael Mann",
			Cast:    []domain.CastMember{{Name: "Al Pacino"}},
			Matched: true,
		},
	}

	docs := DocumentsFromExport(watched, cols, map[string]float64{"heat": 5}, enriched)

	// 2 films + 1 director + 2 actors
	require.Len(t, docs, 5)
	assert.Equal(t, 5.0, docs[0].Rating)

	byID := make(map[string]*SearchDocument, len(docs))
	for _, d := range docs {
		byID[d.ID] = d
	}
	require.Contains(t, byID, "director_michael-mann")
	assert.Equal(t, 2, byID["director_michael-mann"].FilmCount)
	require.Contains(t, byID, "actor_al-pacino")
	assert.Equal(t, 2, byID["actor_al-pacino"].FilmCount)
	require.Contains(t, byID, "actor_robert-de-niro")
	assert.Equal(t, 1, byID["actor_robert-de-niro"].FilmCount)
}

func TestSearchIndex_LargeBatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large batch test in short mode")
	}

	index := setupTestIndex(t)

	// 1000 documents to exercise chunking (batch size is 500)
	docs := make([]*SearchDocument, 1000)
	for i := 0; i < 1000; i++ {
		docs[i] = &SearchDocument{
			ID:   fmt.Sprintf("film_%d", i),
			Type: DocTypeFilm,
			Name: fmt.Sprintf("Film Number %d", i),
		}
	}

	start := time.Now()
	err := index.IndexDocuments(docs)
	require.NoError(t, err)
	t.Logf("Indexed 1000 documents in %v", time.Since(start))

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), count)
}

func TestSearchParams_Defaults(t *testing.T) {
	params := DefaultSearchParams()

	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "relevance", params.SortBy)
	assert.True(t, params.IncludeFacets)
}
