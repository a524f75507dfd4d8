// Package server hosts the gateway over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/msbuild-skills/msbuild-expert/engine/gateway"
	"github.com/msbuild-skills/msbuild-expert/engine/infra/monitoring"
	"github.com/msbuild-skills/msbuild-expert/engine/knowledge/store"
	"github.com/msbuild-skills/msbuild-expert/engine/webhook"
	"github.com/msbuild-skills/msbuild-expert/pkg/config"
	"github.com/msbuild-skills/msbuild-expert/pkg/logger"
	"github.com/spf13/afero"
)

const (
	serverShutdownTimeout     = 5 * time.Second
	monitoringShutdownTimeout = 5 * time.Second
)

// Server wires the knowledge store, the gateway and monitoring behind gin.
type Server struct {
	cfg        *config.Config
	fs         afero.Fs
	store      *store.Store
	monitoring *monitoring.Service
	router     *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithFs sets the filesystem the knowledge store is loaded from.
func WithFs(fs afero.Fs) Option {
	return func(s *Server) { s.fs = fs }
}

// WithStore uses st instead of loading artifacts from disk.
func WithStore(st *store.Store) Option {
	return func(s *Server) { s.store = st }
}

// NewServer loads the knowledge store and builds the router. The store is
// complete before the server can accept requests.
func NewServer(ctx context.Context, cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: configuration is required")
	}
	s := &Server{cfg: cfg, fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		st, err := store.Load(ctx, s.fs, cfg.Knowledge.Dir)
		if err != nil {
			return nil, fmt.Errorf("load knowledge: %w", err)
		}
		s.store = st
	}
	s.monitoring = monitoring.NewMonitoringServiceWithFallback(ctx, monitoring.FromAppConfig(&cfg.Monitoring))
	if err := s.monitoring.ObserveKnowledge(ctx, s.store); err != nil {
		logger.FromContext(ctx).Warn("Knowledge metrics unavailable", "error", err)
	}
	if err := s.buildRouter(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) buildRouter(ctx context.Context) error {
	log := logger.FromContext(ctx)
	metrics, err := gateway.NewMetrics(ctx, s.monitoring.Meter())
	if err != nil {
		return fmt.Errorf("failed to create gateway metrics: %w", err)
	}
	verifier := webhook.NewVerifier(s.cfg.Webhook.Secret.Value())
	if !webhook.Enabled(verifier) {
		log.Warn("GITHUB_WEBHOOK_SECRET not set, signature verification disabled")
	}
	if s.store.Len() == 0 {
		log.Warn("No knowledge bundles loaded, prompts carry base instructions only")
	}
	orch := gateway.NewOrchestrator(
		verifier,
		gateway.NewMSBuildPipeline(s.store),
		gateway.WithMetrics(metrics),
		gateway.WithMaxBody(s.cfg.Server.MaxBodyBytes),
	)
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(RecoveryMiddleware(log))
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(s.monitoring.GinMiddleware(ctx))
	registerRoutes(r, s, orch)
	s.router = r
	return nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the loaded knowledge store.
func (s *Server) Store() *store.Store {
	return s.store
}

// Address returns the listen address.
func (s *Server) Address() string {
	return net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))
}

func (s *Server) createHTTPServer(ctx context.Context) *http.Server {
	return &http.Server{
		Addr:         s.Address(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
		BaseContext: func(net.Listener) context.Context {
			return logger.ContextWithLogger(context.Background(), logger.FromContext(ctx))
		},
	}
}

// Run serves until ctx is canceled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	srv := s.createHTTPServer(ctx)
	errCh := make(chan error, 1)
	go func() {
		log.Info("MSBuild expert gateway listening", "address", fmt.Sprintf("http://%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Debug("Received shutdown signal, initiating graceful shutdown")
	return s.shutdown(ctx, srv)
}

func (s *Server) shutdown(ctx context.Context, srv *http.Server) error {
	log := logger.FromContext(ctx)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serverShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	monCtx, monCancel := context.WithTimeout(context.WithoutCancel(ctx), monitoringShutdownTimeout)
	defer monCancel()
	if err := s.monitoring.Shutdown(monCtx); err != nil {
		log.Warn("Monitoring shutdown failed", "error", err)
	}
	log.Info("Server shutdown completed successfully")
	return nil
}
