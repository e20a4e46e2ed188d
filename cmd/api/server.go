package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/PaulBabatuyi/portfolio-cms/internal/data"
	"github.com/PaulBabatuyi/portfolio-cms/internal/middleware"
)

// tokenIssuer issues and checks admin tokens.
type tokenIssuer interface {
	GenerateToken() (string, time.Time, error)
	middleware.TokenVerifier
}

// passwordChecker compares a login attempt with the admin passphrase.
type passwordChecker interface {
	Check(password string) error
}

// Server holds the stores and auth logic behind the HTTP handlers.
type Server struct {
	projects data.ProjectRepository
	msgs     data.MessageRepository
	settings data.SettingsRepository
	store    data.Pinger
	auth     tokenIssuer
	password passwordChecker
	log      zerolog.Logger

	// exposeInternalErrors puts the underlying error text in 5xx bodies.
	exposeInternalErrors bool
}

// newServer returns a ready-to-use Server wired with a store and auth.
func newServer(store data.Store, authMgr tokenIssuer, password passwordChecker, log zerolog.Logger) *Server {
	return &Server{
		projects: store,
		msgs:     store,
		settings: store,
		store:    store,
		auth:     authMgr,
		password: password,
		log:      log,
	}
}

// RouterConfig collects what NewRouter needs beyond the Server.
type RouterConfig struct {
	Server       *Server
	Log          zerolog.Logger
	CORSOrigins  []string
	MaxBodyBytes int64
	LoginLimiter *middleware.LimiterStore // nil disables login throttling
	Secure       func(http.Handler) http.Handler
	Metrics      bool // expose /metrics
}

// NewRouter builds the HTTP handler. The API is served under /api and,
// for clients configured with a bare origin, at the root as well.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(middleware.RequestLogger(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	r.Use(middleware.CORS(cfg.CORSOrigins, nil, nil))
	if cfg.MaxBodyBytes > 0 {
		r.Use(chimid.RequestSize(cfg.MaxBodyBytes))
	}

	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	api := cfg.Server.routes(cfg.LoginLimiter)
	r.Mount("/api", api)
	r.Mount("/", api)
	return r
}

func (s *Server) routes(loginLimiter *middleware.LimiterStore) chi.Router {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, middleware.CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	requireAdmin := middleware.RequireAdmin(s.auth)

	r.Get("/health", s.Health)
	r.With(middleware.RateLimit(loginLimiter)).Post("/login", s.Login)

	r.Get("/settings", s.GetSettings)
	r.With(requireAdmin).Put("/settings", s.PutSettings)

	r.Route("/projects", func(r chi.Router) {
		r.Get("/", s.ListProjects)
		r.Get("/{id}", s.GetProject)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/", s.CreateProject)
			r.Put("/{id}", s.UpdateProject)
			r.Delete("/{id}", s.DeleteProject)
		})
	})

	r.Route("/messages", func(r chi.Router) {
		r.Post("/", s.CreateMessage)
		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/", s.ListMessages)
			r.Delete("/", s.DeleteMessages)
			r.Delete("/{id}", s.DeleteMessage)
		})
	})
	return r
}
