// Package api serves templates and layout checks over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /sizes
//	GET    /templates
//	POST   /templates                          {"name", "size"} or {"name", "from"}
//	GET    /templates/{id}
//	PUT    /templates/{id}                     full template, clamped and validated
//	DELETE /templates/{id}                     403 for default templates
//	POST   /templates/{id}/sections            {"type"}
//	PATCH  /templates/{id}/sections/{sid}      partial section
//	DELETE /templates/{id}/sections/{sid}
//	GET    /templates/{id}/overlaps
//	POST   /templates/{id}/check               {"recipe", "size"}
//	GET    /templates/{id}/preview?format=svg|png|pdf|dot&size=
//
// Default templates are read-only: PUT and the section routes answer 403, as
// does DELETE. Clients POST {"name", "from"} to get an editable copy.
//
// Errors are JSON objects {"error", "code"} with the status derived from the
// error code: 400 for INVALID_*, 403 for PERMISSION_DENIED, 404 for
// *_NOT_FOUND, 409 for CONFLICT, 503 for UNAVAILABLE.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/recipecard/pkg/cache"
	"github.com/matzehuels/recipecard/pkg/check"
	"github.com/matzehuels/recipecard/pkg/config"
	"github.com/matzehuels/recipecard/pkg/observability"
	"github.com/matzehuels/recipecard/pkg/render"
	"github.com/matzehuels/recipecard/pkg/store"
)

// maxBodyBytes bounds request bodies; templates and recipes are small.
const maxBodyBytes = 1 << 20

// Server is the HTTP API over a template store.
type Server struct {
	Store    store.Store
	Runner   *check.Runner
	Renderer *render.Renderer
	Logger   *log.Logger
}

// NewServer creates a server with an uncached preview renderer. If logger is
// nil, log.Default is used.
func NewServer(s store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Store:    s,
		Runner:   check.NewRunner(s, logger),
		Renderer: &render.Renderer{Cache: cache.NewNullCache(), Logger: logger},
		Logger:   logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)
	r.Get("/sizes", s.listSizes)

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", s.listTemplates)
		r.Post("/", s.createTemplate)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getTemplate)
			r.Put("/", s.replaceTemplate)
			r.Delete("/", s.deleteTemplate)

			r.Post("/sections", s.addSection)
			r.Patch("/sections/{sid}", s.updateSection)
			r.Delete("/sections/{sid}", s.removeSection)

			r.Get("/overlaps", s.overlaps)
			r.Post("/check", s.check)
			r.Get("/preview", s.preview)
		})
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	s.Logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// logRequests logs each request and reports it to the HTTP hooks under its
// route pattern.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))

		s.Logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
