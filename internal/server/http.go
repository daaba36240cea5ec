package server

import (
	"context"
	"errors"
	stdlog "log"
	"net"
	"net/http"

	"github.com/MKhiriev/go-auth-service/internal/config"
	"github.com/MKhiriev/go-auth-service/internal/logger"
)

// httpServer runs an [http.Server] on its own listener. It serves both the
// public API and the metrics side server.
type httpServer struct {
	name     string
	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

func newHTTPServer(name string, handler http.Handler, addr string, cfg config.Server, logger *logger.Logger) *httpServer {
	return wrapHTTPServer(name, &http.Server{Addr: addr, Handler: handler}, cfg, logger)
}

// wrapHTTPServer applies the configured timeouts to an already built server.
func wrapHTTPServer(name string, srv *http.Server, cfg config.Server, logger *logger.Logger) *httpServer {
	l := logger.With().Str("server", name).Logger()

	srv.ReadHeaderTimeout = cfg.RequestTimeout
	srv.ReadTimeout = cfg.RequestTimeout
	srv.WriteTimeout = cfg.RequestTimeout
	srv.ErrorLog = stdlog.New(l, "", 0)

	return &httpServer{
		name:   name,
		server: srv,
		logger: logger,
	}
}

// Listen binds the configured address.
func (h *httpServer) Listen() error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return err
	}
	h.listener = ln
	return nil
}

// Addr is the bound address, or the configured one before Listen.
func (h *httpServer) Addr() string {
	if h.listener != nil {
		return h.listener.Addr().String()
	}
	return h.server.Addr
}

func (h *httpServer) RunServer() {
	h.logger.Info().Str("server", h.name).Str("address", h.Addr()).Msg("HTTP server is listening")
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		h.logger.Error().Err(err).Str("server", h.name).Msg("HTTP server Serve")
	}
}

func (h *httpServer) Shutdown(ctx context.Context) {
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Error().Err(err).Str("server", h.name).Msg("HTTP server Shutdown")
	}
	// a listener that never reached Serve is not closed by Shutdown
	if h.listener != nil {
		_ = h.listener.Close()
	}
}
