// Package server provides the HTTP API for Insight Stack.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/insightstack/insightstack/internal/config"
	"github.com/insightstack/insightstack/internal/favorites"
	"github.com/insightstack/insightstack/internal/search"
	"github.com/insightstack/insightstack/internal/store"
)

// Server is the HTTP server for the Insight Stack API.
type Server struct {
	engine    *search.Engine
	store     store.Store
	favorites *favorites.Store
	config    *config.ServerConfig
	searchCfg config.SearchConfig
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *search.Engine,
	st store.Store,
	fav *favorites.Store,
	cfg *config.ServerConfig,
	searchCfg config.SearchConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:    engine,
		store:     st,
		favorites: fav,
		config:    cfg,
		searchCfg: searchCfg,
		logger:    logger,
	}
}

// Routes builds the router with all API endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stacks", s.handleListStacks)
		r.Get("/stacks/{stackID}", s.handleGetStack)
		r.Get("/insights", s.handleListInsights)
		r.Get("/insights/{insightID}", s.handleGetInsight)
		r.Get("/insights/{insightID}/related", s.handleRelatedInsights)
		r.Get("/search", s.handleSearch)
		r.Get("/suggest", s.handleSuggest)
		r.Get("/categories", s.handleCategories)
		r.Get("/channels", s.handleChannels)
		r.Get("/tags", s.handleTags)
		r.Get("/export", s.handleExport)
		r.Get("/favorites", s.handleListFavorites)
		r.Post("/favorites", s.handleAddFavorite)
		r.Delete("/favorites/{insightID}", s.handleRemoveFavorite)
		r.Get("/status", s.handleStatus)
	})
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
