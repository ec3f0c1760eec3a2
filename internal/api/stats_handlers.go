package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats",
		Summary:     "Get statistics",
		Description: "Returns the full derived statistics for the current export",
		Tags:        []string{"Stats"},
	}, s.handleGetStats)
}

func (s *Server) handleGetStats(ctx context.Context, _ *struct{}) (*StatsOutput, error) {
	stats, err := s.dashboard.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &StatsOutput{Body: stats}, nil
}
