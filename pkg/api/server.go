package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cinevault/cinevault/pkg/httputil"
	"github.com/cinevault/cinevault/pkg/middleware"
	"github.com/cinevault/cinevault/pkg/observability"
	"github.com/cinevault/cinevault/pkg/validation"
)

// Deps carries everything the server needs. Uploads, Mailer, Sweeper,
// Welcome, and RateLimiter are optional; routes depending on an absent
// component are not registered.
type Deps struct {
	Auth    AuthService
	Movies  MovieService
	Uploads UploadService
	Mailer  TestMailer
	Sweeper SweepRunner
	Welcome WelcomeSender

	Validator   *validation.Validator
	AuthMW      *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
	Metrics     *observability.Metrics
	Health      http.Handler
	Logger      *observability.Logger
}

// Server is the HTTP API server.
type Server struct {
	router *mux.Router
	deps   Deps
}

// NewServer builds the router and registers all routes.
func NewServer(deps Deps) *Server {
	s := &Server{
		router: mux.NewRouter(),
		deps:   deps,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	if s.deps.Metrics != nil {
		s.router.Use(s.deps.Metrics.HTTPMiddleware)
	}
	if s.deps.RateLimiter != nil {
		s.router.Use(s.deps.RateLimiter.Handler)
	}

	authHandlers := &AuthHandlers{
		service:   s.deps.Auth,
		validator: s.deps.Validator,
		authMW:    s.deps.AuthMW,
		logger:    s.deps.Logger,
	}
	authHandlers.RegisterRoutes(s.router)

	movieHandlers := &MovieHandlers{
		service:   s.deps.Movies,
		validator: s.deps.Validator,
		authMW:    s.deps.AuthMW,
		logger:    s.deps.Logger,
	}
	movieHandlers.RegisterRoutes(s.router)

	if s.deps.Uploads != nil {
		uploadHandlers := &UploadHandlers{
			service: s.deps.Uploads,
			authMW:  s.deps.AuthMW,
			logger:  s.deps.Logger,
		}
		uploadHandlers.RegisterRoutes(s.router)
	}

	if s.deps.Mailer != nil {
		emailHandlers := &EmailHandlers{
			auth:    s.deps.Auth,
			mailer:  s.deps.Mailer,
			sweeper: s.deps.Sweeper,
			welcome: s.deps.Welcome,
			authMW:  s.deps.AuthMW,
			logger:  s.deps.Logger,
		}
		emailHandlers.RegisterRoutes(s.router)
	}

	if s.deps.Health != nil {
		s.router.Handle("/health", s.deps.Health).Methods("GET")
	}
	if s.deps.Metrics != nil {
		s.router.Handle("/metrics", s.deps.Metrics.Handler()).Methods("GET")
	}

	s.router.HandleFunc("/api", s.apiIndex).Methods("GET")
	s.router.NotFoundHandler = http.HandlerFunc(notFound)
}

// apiIndex lists the mounted route groups.
func (s *Server) apiIndex(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, map[string]string{
		"auth":   "/api/auth",
		"movies": "/api/movies",
		"upload": "/api/upload",
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	httputil.WriteNotFound(w, "route not found")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
