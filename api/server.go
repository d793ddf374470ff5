package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/jmorales/portfolio-backend/config"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, posts PostStore, tags TagStore, files FileStore, resolver ContentResolver) (Server, error) {
	// Bind to 0.0.0.0 for external access
	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port)

	startupTime := time.Now()

	router := newRouter(posts, tags, files, resolver,
		withConfig(cfg),
		withStartupTime(startupTime),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      config.Config
	startupTime time.Time
}

func withConfig(cfg config.Config) func(*router) {
	return func(r *router) {
		r.config = cfg
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(posts PostStore, tags TagStore, files FileStore, resolver ContentResolver, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	// RequestLoggingMiddleware runs outermost so the request ID it assigns
	// is in the context by the time LogInternalServerErrors reads it.
	chiRouter.Use(RequestLoggingMiddleware)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.config.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", confirmDeleteAllHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Credentials are detected on every route; rejection happens either in
	// the protected route group or inside handlers gating unpublished reads.
	authMiddleware := newAuthMiddleware(router.config.AdminUsername, router.config.AdminPassword)
	chiRouter.Use(authMiddleware.detect)

	handlers := initializeHandlers(posts, tags, files, resolver, router.startupTime)
	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
