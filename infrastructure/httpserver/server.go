// Package httpserver provides the HTTP API for items, sync, and chat.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"inventory-chat/application"
	"inventory-chat/domain"
	"inventory-chat/infrastructure/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server is the HTTP server exposing the item store, the sync engine, and
// the chat engine.
type Server struct {
	store  domain.ItemStore
	sync   *application.SyncService
	chat   *application.ChatService
	config *config.ServerConfig
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	store domain.ItemStore,
	sync *application.SyncService,
	chat *application.ChatService,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		store:  store,
		sync:   sync,
		chat:   chat,
		config: cfg,
		logger: logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)

	r.Route("/api/items", func(r chi.Router) {
		r.Get("/", s.handleListItems)
		r.Post("/", s.handleCreateItem)
		r.Post("/sync", s.handleFullSync)
		r.Post("/chat", s.handleChat)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetItem)
			r.Put("/", s.handleUpdateItem)
			r.Delete("/", s.handleDeleteItem)
			r.Post("/restore", s.handleRestoreItem)
		})
	})

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
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
