package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PageDAO/PageProvenanceService/pkg/form"
	"github.com/PageDAO/PageProvenanceService/pkg/openapi"
	"github.com/PageDAO/PageProvenanceService/pkg/orchestrator"
	"github.com/PageDAO/PageProvenanceService/pkg/renderers/html"
)

const (
	defaultAddr          = ":8080"
	defaultShutdownGrace = 10 * time.Second
	defaultServiceTitle  = "Page Provenance Service"
	defaultScriptAsset   = "runtime.autosize"
	previewRenderer      = "html"
)

// Option customises a Server.
type Option func(*Server)

// WithOrchestrator sets the pipeline used for previews and artifacts.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		s.orch = orch
	}
}

// WithHTMLRenderer sets the renderer for the form page.
func WithHTMLRenderer(renderer *html.Renderer) Option {
	return func(s *Server) {
		s.pages = renderer
	}
}

// WithValidator sets the structural validator for JSON payloads.
func WithValidator(validator *openapi.Validator) Option {
	return func(s *Server) {
		s.validator = validator
	}
}

// WithIssuer runs an address issuance step on every successful submission.
func WithIssuer(issuer form.AddressIssuer) Option {
	return func(s *Server) {
		s.issuer = issuer
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAddr sets the listen address used by Run.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr = strings.TrimSpace(addr); addr != "" {
			s.addr = addr
		}
	}
}

// WithShutdownGrace bounds how long Run waits for in-flight requests.
func WithShutdownGrace(grace time.Duration) Option {
	return func(s *Server) {
		if grace > 0 {
			s.shutdownGrace = grace
		}
	}
}

// WithServiceTitle sets the heading of the form page.
func WithServiceTitle(title string) Option {
	return func(s *Server) {
		if title = strings.TrimSpace(title); title != "" {
			s.serviceTitle = title
		}
	}
}

// WithTheme selects the theme applied to pages and artifacts.
func WithTheme(name, variant string) Option {
	return func(s *Server) {
		s.themeName = strings.TrimSpace(name)
		s.themeVariant = strings.TrimSpace(variant)
	}
}

// WithAssetFS serves files under /assets/. Later file systems win when
// names collide.
func WithAssetFS(files ...fs.FS) Option {
	return func(s *Server) {
		for _, fsys := range files {
			if fsys != nil {
				s.assets = append(s.assets, fsys)
			}
		}
	}
}

// Server exposes the form, the preview and the artifact API over HTTP. Every
// request builds its own form controller from the posted values.
type Server struct {
	orch          *orchestrator.Orchestrator
	pages         *html.Renderer
	validator     *openapi.Validator
	issuer        form.AddressIssuer
	logger        *zap.Logger
	addr          string
	shutdownGrace time.Duration
	serviceTitle  string
	themeName     string
	themeVariant  string
	assets        []fs.FS
	handler       http.Handler
}

// New constructs a Server. Missing dependencies are built with their
// defaults.
func New(ctx context.Context, options ...Option) (*Server, error) {
	s := &Server{
		addr:          defaultAddr,
		shutdownGrace: defaultShutdownGrace,
		serviceTitle:  defaultServiceTitle,
		logger:        zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.orch == nil {
		s.orch = orchestrator.New(orchestrator.WithLogger(s.logger))
	}
	if s.pages == nil {
		pages, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("server: form renderer: %w", err)
		}
		s.pages = pages
	}
	if s.validator == nil {
		validator, err := openapi.NewValidator(ctx)
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.validator = validator
	}
	if _, err := s.orch.Presentation(previewRenderer, s.themeName, s.themeVariant); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s.handler = s.routes()
	return s, nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down within the grace period.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()
	s.logger.Info("server listening", zap.String("addr", listener.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownGrace)
	defer cancel()
	s.logger.Info("server shutting down", zap.Duration("grace", s.shutdownGrace))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}
