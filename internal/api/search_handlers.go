package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/screendapp/screend-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search",
		Description: "Searches films, directors, and actors in the current export",
		Tags:        []string{"Search"},
	}, s.handleSearch)
}

// === DTOs ===

// SearchInput contains search query parameters.
type SearchInput struct {
	Query     string  `query:"q" maxLength:"256" doc:"Search query"`
	Type      string  `query:"type" enum:",film,director,actor" doc:"Restrict to one document type"`
	Genre     string  `query:"genre" doc:"Filter films by genre"`
	MinYear   int     `query:"min_year" minimum:"0" doc:"Minimum release year"`
	MaxYear   int     `query:"max_year" minimum:"0" doc:"Maximum release year"`
	MinRating float64 `query:"min_rating" minimum:"0" maximum:"5" doc:"Minimum user rating"`
	Limit     int     `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum results"`
	Offset    int     `query:"offset" minimum:"0" doc:"Result offset for pagination"`
}

// SearchOutput wraps search results for Huma.
type SearchOutput struct {
	Body search.SearchResult
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.MinYear = input.MinYear
	params.MaxYear = input.MaxYear
	params.MinRating = input.MinRating
	params.Offset = input.Offset
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Type != "" {
		params.Types = []string{input.Type}
	}
	if input.Genre != "" {
		params.Genres = []string{input.Genre}
	}

	result, err := s.dashboard.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: *result}, nil
}

// searchPing is a cheap probe used by the health check.
func searchPing() search.SearchParams {
	return search.SearchParams{Limit: 1}
}
