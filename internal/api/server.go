// Package api provides the HTTP API server and handlers for the BookSelf application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookselfapp/bookself-server/internal/store"
)

// APIVersion is the served API version.
const APIVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       store.Store
	services    *Services
	router      *chi.Mux
	api         huma.API
	logger      *slog.Logger
	rateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
// corsOrigins lists the allowed CORS origins; ["*"] allows any.
func NewServer(st store.Store, services *Services, corsOrigins []string, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:       st,
		services:    services,
		router:      router,
		logger:      logger,
		rateLimiter: NewRateLimiter(300, time.Minute, 100),
	}

	s.setupMiddleware(corsOrigins)

	humaConfig := huma.DefaultConfig("BookSelf API", APIVersion)
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerIdentityRoutes()
	s.registerBookRoutes()
	s.registerTransferRoutes()
	s.registerPublicRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(corsOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-ID"},
		MaxAge:         300,
	}))
	s.router.Use(RateLimitMiddleware(s.rateLimiter, s.logger))
}
