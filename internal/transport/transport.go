// Package transport serves the HTTP API and a gRPC health endpoint on one
// listener. cmux routes connections whose HTTP/2 content-type is
// application/grpc to the gRPC server and everything else to net/http.
package transport

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/soheilhy/cmux"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Config tunes the HTTP server and shutdown.
type Config struct {
	ReadTimeout     time.Duration // default 15s
	WriteTimeout    time.Duration // default 60s
	IdleTimeout     time.Duration // default 120s
	ShutdownTimeout time.Duration // default 20s
}

func (c Config) withDefaults() Config {
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 60 * time.Second
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 120 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 20 * time.Second
	}
	return c
}

// Server owns the HTTP and gRPC servers that share a listener.
type Server struct {
	http   *http.Server
	grpc   *grpc.Server
	health *health.Server
	cfg    Config
	logger *slog.Logger
}

// New builds a Server for handler. The gRPC side exposes
// grpc.health.v1.Health and server reflection.
func New(handler http.Handler, cfg Config, logger *slog.Logger) *Server {
	cfg = cfg.withDefaults()

	gs := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	reflection.Register(gs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{
		http: &http.Server{
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		grpc:   gs,
		health: hs,
		cfg:    cfg,
		logger: logger,
	}
}

// Run serves on lis until ctx is cancelled or a server fails, then shuts both
// servers down. In-flight HTTP requests get ShutdownTimeout to finish.
func (s *Server) Run(ctx context.Context, lis net.Listener) error {
	m := cmux.New(lis)
	grpcL := m.MatchWithWriters(cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"))
	httpL := m.Match(cmux.Any())

	serveErr := make(chan error, 3)
	go func() { serveErr <- ignoreClosed(s.grpc.Serve(grpcL)) }()
	go func() { serveErr <- ignoreClosed(s.http.Serve(httpL)) }()
	go func() { serveErr <- ignoreClosed(m.Serve()) }()

	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.logger.Info("server listening", "addr", lis.Addr().String())

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case runErr = <-serveErr:
		if runErr != nil {
			s.logger.Error("server error", "error", runErr)
		}
	}

	shutdownErr := s.shutdown(lis)
	return errors.Join(runErr, shutdownErr)
}

func (s *Server) shutdown(lis net.Listener) error {
	// Mark health as NOT_SERVING so load balancers drain traffic.
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}

	stopped := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		s.logger.Warn("grpc graceful stop timed out, forcing stop")
		s.grpc.Stop()
	}

	if err := lis.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		errs = append(errs, err)
	}

	s.logger.Info("shutdown complete")
	return errors.Join(errs...)
}

// ignoreClosed drops the errors every server returns on a normal shutdown.
func ignoreClosed(err error) error {
	switch {
	case err == nil,
		errors.Is(err, http.ErrServerClosed),
		errors.Is(err, grpc.ErrServerStopped),
		errors.Is(err, net.ErrClosed),
		errors.Is(err, cmux.ErrListenerClosed):
		return nil
	}
	return err
}
