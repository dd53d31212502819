// Package server exposes stored scene documents over HTTP as rendered
// pages.
//
// Routes:
//
//	GET    /healthz
//	GET    /documents                          list stored documents
//	POST   /documents?name=&format=            store the request body
//	GET    /documents/{id}                     the stored document bytes
//	PUT    /documents/{id}                     replace a document
//	DELETE /documents/{id}
//	GET    /documents/{id}/pages               page count
//	GET    /documents/{id}/pages/{page}.{fmt}  one SVG or PNG page
//	GET    /documents/{id}/export.pdf          all pages as one PDF
//
// Page routes accept paper, per_page, zoom, section and refresh query
// parameters. Errors are JSON objects with "code" and "error" fields.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/corescene/pkg/pipeline"
	"github.com/matzehuels/corescene/pkg/store"
)

// DefaultMaxBody bounds uploaded documents.
const DefaultMaxBody = 4 << 20

// Config wires a Server.
type Config struct {
	Store  store.Store
	Runner *pipeline.Runner
	// Defaults seeds the pipeline options of every render: paper, per_page,
	// bands and TTL. Query parameters override them.
	Defaults pipeline.Options
	Logger   *log.Logger
	MaxBody  int64
}

// Server serves documents from a store through a pipeline runner.
type Server struct {
	store    store.Store
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	maxBody  int64
}

// New returns a server for cfg. A nil runner renders without a cache.
func New(cfg Config) *Server {
	s := &Server{
		store:    cfg.Store,
		runner:   cfg.Runner,
		defaults: cfg.Defaults,
		logger:   cfg.Logger,
		maxBody:  cfg.MaxBody,
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBody
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "METHOD_NOT_ALLOWED", Error: r.Method + " not allowed"})
	})

	r.Get("/healthz", s.handleHealth)
	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleReplace)
			r.Delete("/", s.handleDelete)
			r.Get("/pages", s.handlePageCount)
			r.Get("/pages/{page:[0-9]+}.{format:[a-z]+}", s.handlePage)
			r.Get("/export.pdf", s.handleExport)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
