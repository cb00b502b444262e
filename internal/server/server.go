// Package server provides the HTTP API for hsearch.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/muarrikhyazka/hsearch/internal/catalog"
	"github.com/muarrikhyazka/hsearch/internal/config"
	"github.com/muarrikhyazka/hsearch/internal/search"
)

// Server is the HTTP server for the hsearch API.
type Server struct {
	engine  *search.Engine
	store   catalog.Store
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
	started time.Time
}

// NewServer creates a server with the given dependencies.
func NewServer(engine *search.Engine, store catalog.Store, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		engine:  engine,
		store:   store,
		config:  cfg,
		logger:  logger,
		started: time.Now(),
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	timeout := time.Duration(s.config.Server.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))

	r.Get("/", s.handleRoot)
	r.Post("/api/search", s.handleSearch)
	r.Post("/api/suggestions", s.handleSuggestions)
	r.Get("/api/categories", s.handleCategories)
	r.Get("/api/health", s.handleHealth)
	r.Get("/api/status", s.handleStatus)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// requestID tags every request with an X-Request-ID header, keeping one the
// client already sent.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
