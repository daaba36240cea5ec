package server

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/handler"
	"github.com/MKhiriev/go-auth-service/internal/logger"
)

const defaultShutdownTimeout = 10 * time.Second

type server struct {
	httpServer    *httpServer
	metricsServer *httpServer
	gRPCServer    *grpcServer

	shutdownTimeout time.Duration

	logger *logger.Logger
}

// NewServer creates a server for every handler in handlers. metricsServer is
// optional and is run alongside them.
func NewServer(handlers *handler.Handlers, metricsServer *http.Server, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}

	if handlers.HTTP != nil {
		servers.httpServer = newHTTPServer("api", handlers.HTTP.Init(), cfg.HTTPAddress, cfg, logger)
	}
	if handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg.GRPCAddress, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	if metricsServer != nil {
		servers.metricsServer = wrapHTTPServer("metrics", metricsServer, cfg, logger)
	}

	return servers, nil
}

// RunServer blocks until SIGTERM, SIGINT or SIGQUIT and then shuts every
// server down.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// finish HTTP servers
	if s.httpServer != nil {
		s.httpServer.Shutdown(ctx)
	}
	if s.metricsServer != nil {
		s.metricsServer.Shutdown(ctx)
	}

	// finish gRPC server
	if s.gRPCServer != nil {
		s.gRPCServer.Shutdown(ctx)
	}
}

func (s *server) run(ctx context.Context) error {
	if err := s.start(); err != nil {
		s.Shutdown()
		return err
	}

	<-ctx.Done()

	s.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}

// start binds every listener and serves in the background. Binding happens
// first so that an occupied port is reported to the caller.
func (s *server) start() error {
	if s.httpServer != nil {
		if err := s.httpServer.Listen(); err != nil {
			return fmt.Errorf("HTTP server listen: %w", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Listen(); err != nil {
			return fmt.Errorf("metrics server listen: %w", err)
		}
	}
	if s.gRPCServer != nil {
		if err := s.gRPCServer.Listen(); err != nil {
			return fmt.Errorf("gRPC server listen: %w", err)
		}
	}

	// launch all created servers
	if s.httpServer != nil {
		go s.httpServer.RunServer()
	}
	if s.metricsServer != nil {
		go s.metricsServer.RunServer()
	}
	if s.gRPCServer != nil {
		go s.gRPCServer.RunServer()
	}

	return nil
}
