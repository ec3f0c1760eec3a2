package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/screendapp/screend-server/internal/domain"
)

func (s *Server) registerExportRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:  "uploadExport",
		Method:       http.MethodPost,
		Path:         "/api/v1/export",
		Summary:      "Upload export",
		Description:  "Uploads a zip export archive and returns the derived statistics",
		Tags:         []string{"Export"},
		MaxBodyBytes: s.cfg.Upload.MaxSize,
	}, s.handleUploadExport)

	huma.Register(s.api, huma.Operation{
		OperationID: "getExport",
		Method:      http.MethodGet,
		Path:        "/api/v1/export",
		Summary:     "Get export summary",
		Description: "Returns record counts for the currently uploaded export",
		Tags:        []string{"Export"},
	}, s.handleGetExport)
}

// === DTOs ===

// UploadExportInput carries the raw zip archive.
type UploadExportInput struct {
	ContentType string `header:"Content-Type"`
	RawBody     []byte `contentType:"application/zip"`
}

// StatsOutput wraps the derived statistics for Huma.
type StatsOutput struct {
	Body domain.Stats
}

// ExportSummaryResponse contains record counts per category.
type ExportSummaryResponse struct {
	DiaryEntries int `json:"diary_entries" doc:"Diary rows in the export"`
	WatchedFilms int `json:"watched_films" doc:"Watched rows in the export"`
	Ratings      int `json:"ratings" doc:"Rating rows in the export"`
	Reviews      int `json:"reviews" doc:"Review rows in the export"`
	LikedFilms   int `json:"liked_films" doc:"Liked-film rows in the export"`
}

// ExportSummaryOutput wraps the export summary for Huma.
type ExportSummaryOutput struct {
	Body ExportSummaryResponse
}

// === Handlers ===

func (s *Server) handleUploadExport(ctx context.Context, input *UploadExportInput) (*StatsOutput, error) {
	if len(input.RawBody) == 0 {
		return nil, huma.Error400BadRequest("request body is empty")
	}

	s.logger.Info("export upload request",
		"content_type", input.ContentType,
		"body_size", len(input.RawBody),
	)

	stats, err := s.dashboard.Upload(ctx, input.RawBody)
	if err != nil {
		return nil, err
	}

	return &StatsOutput{Body: stats}, nil
}

func (s *Server) handleGetExport(ctx context.Context, _ *struct{}) (*ExportSummaryOutput, error) {
	summary, err := s.dashboard.Export(ctx)
	if err != nil {
		return nil, err
	}

	return &ExportSummaryOutput{
		Body: ExportSummaryResponse{
			DiaryEntries: summary.DiaryEntries,
			WatchedFilms: summary.WatchedFilms,
			Ratings:      summary.Ratings,
			Reviews:      summary.Reviews,
			LikedFilms:   summary.LikedFilms,
		},
	}, nil
}
