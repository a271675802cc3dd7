package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alfagnish/demo-service/internal/config"
	"github.com/alfagnish/demo-service/internal/handlers"
	"github.com/alfagnish/demo-service/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New creates a fully-configured chi router with all routes, middleware,
// and handlers wired together.
func New(cfg *config.Config, log *slog.Logger) http.Handler {
	return newRouter(cfg, log, time.Now)
}

// NewHTTPServer wraps the router in an http.Server using the configured
// address and timeouts.
func NewHTTPServer(cfg *config.Config, log *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           New(cfg, log),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}
}

func newRouter(cfg *config.Config, log *slog.Logger, now handlers.Clock) *chi.Mux {
	r := chi.NewRouter()

	// ── Middleware ───────────────────────────────────────────
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Identity)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// ── Handlers ────────────────────────────────────────────
	systemH := handlers.NewSystemHandler()
	echoH := handlers.NewEchoHandler(cfg.ServiceName, now)
	usersH := handlers.NewUsersHandler(cfg.ServiceName, now)

	// ── Routes ──────────────────────────────────────────────
	systemH.Routes(r)
	echoH.Routes(r)
	r.Route("/users", usersH.Routes)

	return r
}
