// Package api provides the HTTP API server and handlers for the
// Screend dashboard.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/screendapp/screend-server/internal/config"
	"github.com/screendapp/screend-server/internal/service"
	"github.com/screendapp/screend-server/internal/sse"
)

// Version reported by the OpenAPI document and the health endpoint.
const Version = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	dashboard  *service.DashboardService
	sseHandler *sse.Handler
	sseManager *sse.Manager
	router     *chi.Mux
	api        huma.API
	cfg        *config.Config
	logger     *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, dashboard *service.DashboardService, sseManager *sse.Manager, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	humaConfig := huma.DefaultConfig(cfg.Server.Name+" API", Version)
	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		dashboard:  dashboard,
		sseHandler: sse.NewHandler(sseManager, logger),
		sseManager: sseManager,
		router:     router,
		api:        api,
		cfg:        cfg,
		logger:     logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	// The dashboard is a browser app; the API itself is origin-agnostic.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes registers all huma operations plus the raw SSE stream.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerExportRoutes()
	s.registerStatsRoutes()
	s.registerEnrichmentRoutes()
	s.registerSearchRoutes()

	// SSE needs direct access to the ResponseWriter for flushing, so
	// it bypasses huma.
	s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)
}
