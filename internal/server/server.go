// Package server exposes the engine over HTTP.
//
// Routes:
//
//	GET  /         liveness greeting
//	GET  /healthz  health probe
//	POST /day17    grid text in, {"solution1": …, "solution2": …} out
//	POST /solve    grid text in, full engine.Answer out
//	GET  /metrics  Prometheus exposition (when a handler is configured)
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/katalvlaran/crucible/engine"
	"github.com/katalvlaran/crucible/gridgraph"
	"github.com/katalvlaran/crucible/tropical"
)

// DefaultMaxBody caps request bodies.
const DefaultMaxBody = 4 << 20

// Solver is the part of engine.Service the server needs.
type Solver interface {
	Solve(ctx context.Context, input string) (engine.Answer, error)
}

// Server routes HTTP requests to a Solver.
type Server struct {
	solver  Solver
	logger  *log.Logger
	metrics http.Handler
	maxBody int64
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithMaxBody caps request bodies at n bytes.
func WithMaxBody(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New creates a Server around solver.
func New(solver Solver, opts ...Option) *Server {
	s := &Server{
		solver:  solver,
		logger:  log.New(io.Discard),
		maxBody: DefaultMaxBody,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"response": "Hello, world!!"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/day17", s.handleDay17)
	r.Post("/solve", s.handleSolve)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return r
}

// numberResponse is the two-part answer of /day17.
type numberResponse struct {
	Solution1 tropical.Value `json:"solution1"`
	Solution2 tropical.Value `json:"solution2"`
}

func (s *Server) handleDay17(w http.ResponseWriter, r *http.Request) {
	ans, ok := s.solve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, numberResponse{Solution1: ans.Solution1, Solution2: ans.Solution2})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	ans, ok := s.solve(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ans)
}

// solve reads the body and runs the solver, writing the error response
// itself when it reports false.
func (s *Server) solve(w http.ResponseWriter, r *http.Request) (engine.Answer, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
		} else {
			writeError(w, http.StatusBadRequest, err)
		}
		return engine.Answer{}, false
	}

	ans, err := s.solver.Solve(r.Context(), string(body))
	if err != nil {
		var pe *gridgraph.ParseError
		switch {
		case errors.As(err, &pe):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, engine.ErrGridTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, err)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, err)
		default:
			s.logger.Error("solve failed", "request_id", RequestIDFrom(r.Context()), "err", err)
			writeError(w, http.StatusInternalServerError, err)
		}
		return engine.Answer{}, false
	}

	return ans, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, addr string, readTimeout, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}

	return s.Serve(ctx, ln, readTimeout, shutdownTimeout)
}

// Serve is Run over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, readTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("graceful shutdown incomplete", "err", err)
		if cerr := srv.Close(); cerr != nil {
			return fmt.Errorf("server: close: %w", cerr)
		}
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("stopped")

	return nil
}
