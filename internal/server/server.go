// Package server provides the HTTP API for Tsunagu.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/tsunagu/internal/config"
	"github.com/hyperjump/tsunagu/internal/intake"
	"github.com/hyperjump/tsunagu/internal/keyword"
	"github.com/hyperjump/tsunagu/internal/match"
	"github.com/hyperjump/tsunagu/internal/storage"
)

// Server is the HTTP server for the Tsunagu API.
type Server struct {
	intake    *intake.Service
	ranker    *match.Ranker
	scorer    *match.Scorer
	storage   storage.Storage
	roleIndex keyword.RoleIndex
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	in *intake.Service,
	scorer *match.Scorer,
	ranker *match.Ranker,
	st storage.Storage,
	roleIndex keyword.RoleIndex,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		intake:    in,
		scorer:    scorer,
		ranker:    ranker,
		storage:   st,
		roleIndex: roleIndex,
		config:    cfg,
		logger:    logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Router builds the chi router. Exposed separately so tests can exercise
// handlers without binding a port.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/resumes", s.handleUploadResume)
	r.Get("/api/v1/resumes", s.handleListResumes)
	r.Get("/api/v1/resumes/{id}", s.handleGetResume)
	r.Delete("/api/v1/resumes/{id}", s.handleDeleteResume)

	r.Post("/api/v1/roles", s.handleCreateRole)
	r.Get("/api/v1/roles", s.handleListRoles)
	r.Get("/api/v1/roles/{id}", s.handleGetRole)
	r.Delete("/api/v1/roles/{id}", s.handleDeleteRole)

	r.Post("/api/v1/match/roles", s.handleMatchRoles)
	r.Post("/api/v1/match/score", s.handleMatchScore)

	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
