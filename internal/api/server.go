// Package api exposes compiled roadmaps over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rijksuitgaven/roadmap/internal/pipeline"
	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

// RoadmapService is what the handlers need from the compile pipeline.
type RoadmapService interface {
	Roadmap(ctx context.Context) (roadmap.Roadmap, error)
	Stats() pipeline.StatsSnapshot
}

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	svc    RoadmapService
	apiKey string
	log    *slog.Logger
}

// NewServer creates and configures the HTTP server. apiKey guards every
// /api route.
func NewServer(svc RoadmapService, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		apiKey: apiKey,
		log:    log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	// Admin endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.apiKey))

		r.Get("/api/v1/team/roadmap", s.handleRoadmap)
		r.Get("/api/stats/parse", s.handleParseStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
