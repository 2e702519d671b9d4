// Package httpapi wires the HTTP surface of the budget service.
// It keeps handlers thin, delegating business rules to the service layer.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tinoosan/smartbudget/internal/categorize"
	"github.com/tinoosan/smartbudget/internal/service/budget"
	"github.com/tinoosan/smartbudget/internal/service/user"
)

// ReadyChecker is implemented by stores that can report connectivity.
type ReadyChecker interface {
	Ready(ctx context.Context) error
}

// Config holds the HTTP-level settings.
type Config struct {
	// Secret signs session tokens (HS256).
	Secret   string
	Issuer   string
	TokenTTL time.Duration
	// Currency is the ISO code used for formatted amounts.
	Currency string
}

// Server wires handlers and middleware using Chi.
type Server struct {
	users       user.Service
	budget      budget.Service
	categorizer *categorize.Categorizer
	tokens      tokenIssuer
	currency    string
	ready       []ReadyChecker
	log         *slog.Logger
	rt          *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by request logging and panic recovery.
func New(users user.Service, budgetSvc budget.Service, c *categorize.Categorizer, cfg Config, logger *slog.Logger, ready ...ReadyChecker) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.Currency == "" {
		cfg.Currency = "BRL"
	}
	if c == nil {
		c = categorize.New()
	}
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)

	s := &Server{
		users:       users,
		budget:      budgetSvc,
		categorizer: c,
		tokens:      tokenIssuer{secret: []byte(cfg.Secret), issuer: cfg.Issuer, ttl: cfg.TokenTTL},
		currency:    cfg.Currency,
		ready:       ready,
		log:         logger,
		rt:          r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }
