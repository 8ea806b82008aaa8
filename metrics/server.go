package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 3 * time.Second

// Server exposes /metrics and /healthz
// An empty address disables it; every lifecycle call is then a no-op
type Server struct {
	addr    string
	metrics *Metrics
	log     zerolog.Logger

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	done     chan struct{}
}

// NewServer creates the listener service for m
func NewServer(addr string, m *Metrics, log zerolog.Logger) *Server {
	return &Server{addr: addr, metrics: m, log: log}
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	return r
}

// Name implements Service
func (s *Server) Name() string {
	return "metrics"
}

// Dependencies implements Service
func (s *Server) Dependencies() []string {
	return nil
}

// Init implements Service
func (s *Server) Init(args ...any) error {
	if s.addr == "" {
		return nil
	}
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return nil
}

// Start implements Service
// Binds synchronously so a bad address fails startup; serving runs in the background
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv == nil || s.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("metrics: listen %s: %w", s.addr, err)
	}
	s.listener = ln
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("metrics server stopped")
		}
	}()
	s.log.Info().Str("addr", ln.Addr().String()).Msg("metrics server listening")
	return nil
}

// Stop implements Service
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := s.srv.Shutdown(ctx)
	<-s.done
	s.listener = nil
	if err != nil {
		return fmt.Errorf("metrics: shutdown: %w", err)
	}
	return nil
}

// Addr returns the bound address, empty when not listening
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
