// Package server provides the HTTP server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sanixdarker/gqlg/internal/app"
	"github.com/sanixdarker/gqlg/internal/server/handlers"
	servermw "github.com/sanixdarker/gqlg/internal/server/middleware"
)

// Server represents the HTTP server.
type Server struct {
	app     *app.App
	server  *http.Server
	router  *chi.Mux
	limiter *servermw.RateLimiter
}

// New creates a new Server.
func New(application *app.App) *Server {
	s := &Server{
		app:     application,
		router:  chi.NewRouter(),
		limiter: servermw.NewRateLimiter(application.Config.RateLimit, application.Config.RateBurst),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", application.Config.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(servermw.SecurityHeaders)
	s.router.Use(servermw.Logger(s.app.Logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes() {
	homeHandler := handlers.NewHomeHandler(s.app)
	generateHandler := handlers.NewGenerateHandler(s.app)

	s.router.Get("/", homeHandler.Index)
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	s.router.With(s.limiter.Limit).Post("/api/generate", generateHandler.Generate)

	if s.app.History == nil {
		return
	}
	runsHandler := handlers.NewRunsHandler(s.app)
	s.router.Route("/api/runs", func(r chi.Router) {
		r.Get("/", runsHandler.List)
		r.Get("/{id}", runsHandler.Get)
		r.Delete("/{id}", runsHandler.Delete)
		r.Get("/{id}/catalog", runsHandler.Catalog)
		r.Get("/{id}/{kind}/{name}", runsHandler.Document)
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.limiter.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}
