// Package server exposes the hosting surface over HTTP: a JSON snapshot
// API for the rendering frontend and a websocket endpoint the analysis
// collaborator connects to.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/codeatlas-dev/codeatlas/internal/host"
)

// Config holds server configuration.
type Config struct {
	Port     int  `koanf:"port" yaml:"port"`
	AllowAll bool `koanf:"allow_all" yaml:"allow_all"` // allow all CORS origins (dev mode)
}

// Server serves one graph session.
type Server struct {
	cfg        Config
	session    *host.Session
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server around the given session.
func New(cfg Config, session *host.Session) *Server {
	s := &Server{cfg: cfg, session: session}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Node ids are relative paths and may contain slashes, so node
	// operations take the id in the request body rather than the URL.
	r.Get("/api/graph", s.handleGraph)
	r.Get("/api/search", s.handleSearch)
	r.Post("/api/nodes/expand", s.handleExpand)
	r.Post("/api/nodes/tab", s.handleTab)
	r.Post("/api/nodes/click", s.handleClick)
	r.Post("/api/nodes/open", s.handleOpenFile)
	r.Post("/api/filters/tag", s.handleToggleTag)
	r.Post("/api/filters/structure", s.handleShowStructure)
	r.Post("/api/stickies", s.handleAddSticky)
	r.Put("/api/stickies/{id}", s.handleUpdateSticky)
	r.Delete("/api/stickies/{id}", s.handleDeleteSticky)
	r.Post("/api/stickies/{id}/connect", s.handleConnectMode)
	r.Post("/api/refresh", s.handleRefresh)
	r.Post("/api/retry", s.handleRetry)
	r.HandleFunc("/ws", s.handleWebSocket)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port and launches the session
// dispatcher.
func (s *Server) Start(ctx context.Context) error {
	go s.session.Run(ctx)

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("codeatlas server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// writeJSON marshals v with a status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}
