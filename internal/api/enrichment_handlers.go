package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/screendapp/screend-server/internal/domain"
)

func (s *Server) registerEnrichmentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "startEnrichment",
		Method:        http.MethodPost,
		Path:          "/api/v1/enrichment",
		Summary:       "Start enrichment",
		Description:   "Starts the metadata enrichment task for the current export",
		Tags:          []string{"Enrichment"},
		DefaultStatus: http.StatusAccepted,
	}, s.handleStartEnrichment)

	huma.Register(s.api, huma.Operation{
		OperationID: "getEnrichment",
		Method:      http.MethodGet,
		Path:        "/api/v1/enrichment",
		Summary:     "Get enrichment state",
		Description: "Returns the enrichment task status and progress",
		Tags:        []string{"Enrichment"},
	}, s.handleGetEnrichment)
}

// === DTOs ===

// EnrichmentResponse reports the enrichment task state.
type EnrichmentResponse struct {
	Status   domain.EnrichmentStatus `json:"status" doc:"Task status: idle, loading, success, or error"`
	Progress int                     `json:"progress" doc:"Completion percentage, 0-100"`
}

// EnrichmentOutput wraps the enrichment response for Huma.
type EnrichmentOutput struct {
	Body EnrichmentResponse
}

// === Handlers ===

func (s *Server) handleStartEnrichment(ctx context.Context, _ *struct{}) (*EnrichmentOutput, error) {
	if err := s.dashboard.StartEnrichment(ctx); err != nil {
		return nil, err
	}

	status, progress := s.dashboard.EnrichmentState()
	return &EnrichmentOutput{
		Body: EnrichmentResponse{Status: status, Progress: progress},
	}, nil
}

func (s *Server) handleGetEnrichment(_ context.Context, _ *struct{}) (*EnrichmentOutput, error) {
	status, progress := s.dashboard.EnrichmentState()
	return &EnrichmentOutput{
		Body: EnrichmentResponse{Status: status, Progress: progress},
	}, nil
}
