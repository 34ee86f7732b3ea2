// Package server hosts the registration form over HTTP. Every request mounts
// its own controller; nothing is shared between requests except the renderer
// registry and the metrics recorder.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-regform/internal/config"
	"github.com/goliatone/go-regform/internal/metrics"
	"github.com/goliatone/go-regform/pkg/formstate"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/html"
	"github.com/goliatone/go-regform/pkg/schema"
)

const (
	defaultRenderer = "html"
	acceptedNotice  = "Registration accepted"
)

// Server renders and accepts the registration form.
type Server struct {
	cfg         config.Config
	policy      *schema.Policy
	controller  []formstate.Option
	registry    *render.Registry
	renderer    string
	recorder    *metrics.Recorder
	gatherer    prometheus.Gatherer
	logger      *slog.Logger
	handler     formstate.SubmitHandler
	shutdownTTL time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and submission logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry replaces the renderer registry. The registry must contain the
// renderer selected with WithRenderer.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithRenderer selects the renderer used for the form page.
func WithRenderer(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.renderer = name
		}
	}
}

// WithMetrics records submissions and renders on recorder and exposes gatherer
// on /metrics.
func WithMetrics(recorder *metrics.Recorder, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.recorder = recorder
		s.gatherer = gatherer
	}
}

// WithSubmitHandler replaces the default handler, which logs the accepted
// record.
func WithSubmitHandler(handler formstate.SubmitHandler) Option {
	return func(s *Server) {
		if handler != nil {
			s.handler = handler
		}
	}
}

// WithShutdownGrace bounds how long ListenAndServe waits for in-flight
// requests.
func WithShutdownGrace(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTTL = d
		}
	}
}

// New validates cfg and prepares the server.
func New(cfg config.Config, options ...Option) (*Server, error) {
	s := &Server{
		cfg:         cfg,
		renderer:    defaultRenderer,
		logger:      slog.Default(),
		shutdownTTL: 5 * time.Second,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	opts, err := cfg.ControllerOptions()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.PolicyValue()
	if err != nil {
		return nil, err
	}
	s.policy = policy
	s.controller = append(opts, formstate.WithLogger(s.logger))

	if s.registry == nil {
		renderer, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("server: html renderer: %w", err)
		}
		s.registry = render.NewRegistry()
		s.registry.MustRegister(renderer)
	}
	if _, err := s.registry.Get(s.renderer); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if s.handler == nil {
		s.handler = formstate.LogSubmission(s.logger)
	}
	return s, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/", s.handleForm)
	r.Post("/", s.handleSubmit)
	r.Post("/register", s.handleRegister)
	r.Get("/openapi.json", s.handleOpenAPI)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()
	s.logger.Info("listening", "addr", s.cfg.Addr, "policy", s.policy.Name(), "renderer", s.renderer)

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTTL)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) newController() (*formstate.Controller, error) {
	c, err := formstate.New(s.controller...)
	if err != nil {
		return nil, fmt.Errorf("server: controller: %w", err)
	}
	return c, nil
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
