// Package ioserver exposes the pipeline stage operations as an HTTP
// transform service. Requests carry staging-file references; business
// outcomes come back as structured status objects with HTTP 200,
// malformed requests as HTTP 400.
package ioserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/barcraft/bardb/internal/iopipeline"
	"github.com/barcraft/bardb/pkg/config"
	"github.com/barcraft/bardb/pkg/db"
	"github.com/barcraft/bardb/pkg/errcode"
	"github.com/barcraft/bardb/pkg/stage"
	"github.com/gnames/gn"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the transform service.
type Server struct {
	cfg    *config.Config
	stages *iopipeline.Stages
	router chi.Router
}

// New creates the transform service over a stager and a connected
// database operator.
func New(cfg *config.Config, stgr stage.Stager, op db.Operator) *Server {
	s := &Server{
		cfg:    cfg,
		stages: &iopipeline.Stages{Stager: stgr, DB: op},
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Router returns the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("Transform service listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Route("/drinks", func(r chi.Router) {
		r.Post("/validate", s.handleValidateDrinks)
		r.Post("/filter", s.handleFilterDrinks)
		r.Post("/transform", s.handleTransformDrinks)
		r.Post("/store", s.handleStoreDrinks)
	})
	s.router.Route("/ingredients", func(r chi.Router) {
		r.Post("/unique", s.handleUniqueIngredients)
		r.Post("/filter", s.handleFilterIngredients)
		r.Post("/transform", s.handleTransformIngredients)
		r.Post("/store", s.handleStoreIngredients)
	})
	s.router.Route("/drink/link/ingredients", func(r chi.Router) {
		r.Post("/transform", s.handleTransformLinks)
		r.Post("/store", s.handleStoreLinks)
	})
}

// isMalformed reports whether the error means the request itself was
// bad: a reference pointing at a file that does not exist.
func isMalformed(err error) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code == errcode.StageMissingFileError
	}
	return false
}
