// Package server exposes the slicing pipeline over HTTP.
//
// Routes:
//
//	POST /v1/slice   slice an inline mesh, return the result and artifacts
//	POST /v1/select  slice an inline mesh, return the chain vertices of a band
//	GET  /healthz    liveness
//	GET  /metrics    Prometheus metrics
//
// Request bodies carry the mesh inline, either as a JSON mesh document
// ("mesh"), as Wavefront OBJ text ("obj") or as a sample solid ("sample").
// Mesh files on the server's disk are never read.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/bandslicer/pkg/pipeline"
)

const (
	// DefaultMaxBodyBytes bounds request bodies.
	DefaultMaxBodyBytes = 32 << 20

	// maxSampleCells bounds the marching-cubes grid of sample requests.
	maxSampleCells = 96

	shutdownTimeout = 15 * time.Second
)

// Server serves the HTTP API. Configure fields before calling Handler.
type Server struct {
	Runner       *pipeline.Runner
	Logger       *log.Logger
	MaxBodyBytes int64

	// AllowedOrigins enables CORS for browser clients. Empty disables it.
	AllowedOrigins []string

	started time.Time
}

// New creates a server that runs requests through runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Runner:       runner,
		Logger:       logger,
		MaxBodyBytes: DefaultMaxBodyBytes,
		started:      time.Now(),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.Logger))
	r.Use(instrument)
	if len(s.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/slice", s.slice)
		r.Post("/select", s.selectVertices)
	})

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
