// Package web serves the admin console: an HTML management page driven by
// one core.Surface per browser session, and a read-only JSON API.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/JonMunkholm/schooladmin/internal/config"
	"github.com/JonMunkholm/schooladmin/internal/core"
	webmw "github.com/JonMunkholm/schooladmin/internal/web/middleware"
)

// Options wires a Server.
type Options struct {
	Config   *config.Config
	Registry *core.Registry
	// Imports bounds concurrent imports server-wide. Nil builds one from
	// Config.Import.
	Imports *core.ImportLimiter
	Logger  *slog.Logger
}

// Server is the HTTP server of the console.
type Server struct {
	cfg      *config.Config
	registry *core.Registry
	sessions *SessionStore
	imports  *core.ImportLimiter
	logger   *slog.Logger
	router   *chi.Mux
	server   *http.Server

	stop     context.CancelFunc
	stopOnce sync.Once
}

// NewServer builds the router and the session store. Background work
// (rate-limit and session sweeps) runs until Shutdown.
func NewServer(opts Options) (*Server, error) {
	if opts.Config == nil || opts.Registry == nil {
		return nil, errors.New("web: config and registry are required")
	}
	if opts.Registry.Count() == 0 {
		return nil, core.ErrEmptyRegistry
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	imports := opts.Imports
	if imports == nil {
		imports = core.NewImportLimiter(opts.Config.Import.MaxConcurrent, opts.Config.Import.MaxWaitTime)
	}

	policy, err := core.ParseDeletePolicy(strings.ToLower(opts.Config.Grid.DeletePolicy))
	if err != nil {
		return nil, err
	}

	ctx, stop := context.WithCancel(context.Background())
	s := &Server{
		cfg:      opts.Config,
		registry: opts.Registry,
		imports:  imports,
		logger:   logger,
		router:   chi.NewRouter(),
		stop:     stop,
	}

	grid := opts.Config.Grid
	s.sessions = NewSessionStore(opts.Config.Session, func(ctx context.Context, n core.Notifier) (*core.Surface, error) {
		surface, err := core.NewSurface(s.registry,
			core.WithNotifier(n),
			core.WithPageSize(grid.PageSize),
			core.WithPageSizes(grid.PageSizes),
			core.WithDeletePolicy(policy),
			core.WithLogger(logger),
		)
		if err != nil {
			return nil, err
		}
		// A tab that fails to load shows its error in place of the table.
		_ = surface.Load(ctx)
		return surface, nil
	})
	go s.sessions.Run(ctx, opts.Config.Session.SweepInterval)

	s.setupMiddleware(ctx)
	s.setupRoutes(ctx)
	return s, nil
}

func (s *Server) setupMiddleware(ctx context.Context) {
	s.router.Use(middleware.RequestID)
	s.router.Use(webmw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(webmw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		limiter := newRateLimiter(ctx, s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(limiter.middleware)
	}
}

func (s *Server) setupRoutes(ctx context.Context) {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		if origins := s.cfg.Security.CORSOrigins; len(origins) > 0 {
			r.Use(cors.New(cors.Options{
				AllowedOrigins: origins,
				AllowedMethods: []string{http.MethodGet},
			}).Handler)
		}
		r.Get("/tabs", s.handleAPITabs)
		r.Get("/tabs/{tabID}/items", s.handleAPIItems)
	})

	s.router.Group(func(r chi.Router) {
		r.Use(s.sessions.Middleware)

		r.Get("/", s.handleIndex)
		r.Get("/tabs/{tabID}", s.handleSwitchTab)

		// Search, filters and pagination
		r.Post("/query", s.handleQuery)
		r.Post("/filters/reset", s.handleResetFilters)
		r.Post("/page", s.handlePage)
		r.Post("/page-size", s.handlePageSize)

		// Dialogs
		r.Post("/modal/create", s.handleOpenCreate)
		r.Post("/modal/import", s.handleOpenImport)
		r.Post("/modal/edit", s.handleEditFromDetails)
		r.Post("/modal/cancel", s.handleCancelForm)
		r.Post("/modal/submit", s.handleSubmit)
		r.Post("/modal/details/close", s.handleCloseDetails)
		r.Post("/modal/import/close", s.handleCloseImport)
		r.Post("/modal/delete/confirm", s.handleConfirmDelete)
		r.Post("/modal/delete/cancel", s.handleCancelDelete)
		r.Post("/items/{itemID}/{action}", s.handleItemAction)

		// Spreadsheets
		importRoute := r.With()
		if s.cfg.Rate.Enabled {
			importRoute = r.With(newRateLimiter(ctx, s.cfg.Rate.ImportLimit, time.Minute).middleware)
		}
		importRoute.Post("/import", s.handleImport)
		r.Get("/export", s.handleExport)
	})
}

// Start listens on the configured address. It returns http.ErrServerClosed
// after Shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	s.logger.Info("starting server", "addr", s.server.Addr, "tabs", s.registry.Count())
	return s.server.ListenAndServe()
}

// Shutdown stops accepting requests, waits for running imports and stops
// the background sweepers.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.stopOnce.Do(s.stop)

	var errs []error
	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	if err := s.imports.WaitForDrain(ctx); err != nil {
		errs = append(errs, fmt.Errorf("import drain: %w", err))
	}
	return errors.Join(errs...)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Sessions returns the session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":   "ok",
		"tabs":     s.registry.Count(),
		"sessions": s.sessions.Len(),
		"imports":  s.imports.Status(),
	})
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				// The page carries its stylesheet inline and no scripts.
				w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'none'; style-src 'self' 'unsafe-inline'; img-src 'self' data:")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON and writes it to w.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
