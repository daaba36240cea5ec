package server

import (
	"context"
	"net"
	"time"

	myGRPC "github.com/MKhiriev/go-auth-service/internal/handler/grpc"
	"github.com/MKhiriev/go-auth-service/internal/logger"

	"google.golang.org/grpc"
)

// healthProbeInterval is how often the gRPC health status is refreshed.
const healthProbeInterval = 10 * time.Second

type grpcServer struct {
	handler *myGRPC.Handler

	addr            string
	server          *grpc.Server
	gRPCNetListener net.Listener

	watchCtx  context.Context
	stopWatch context.CancelFunc

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, addr string, logger *logger.Logger) *grpcServer {
	s := grpc.NewServer()
	handler.Register(s)

	watchCtx, stopWatch := context.WithCancel(context.Background())

	return &grpcServer{
		handler:   handler,
		addr:      addr,
		server:    s,
		watchCtx:  watchCtx,
		stopWatch: stopWatch,
		logger:    logger,
	}
}

func (g *grpcServer) Listen() error {
	ln, err := net.Listen("tcp", g.addr)
	if err != nil {
		return err
	}
	g.gRPCNetListener = ln
	return nil
}

func (g *grpcServer) Addr() string {
	if g.gRPCNetListener != nil {
		return g.gRPCNetListener.Addr().String()
	}
	return g.addr
}

func (g *grpcServer) RunServer() {
	go g.handler.Watch(g.watchCtx, healthProbeInterval)

	g.logger.Info().Str("address", g.Addr()).Msg("gRPC server is listening")
	if err := g.server.Serve(g.gRPCNetListener); err != nil {
		g.logger.Error().Err(err).Msg("gRPC server Serve")
	}
}

// Shutdown stops health probing and drains in-flight RPCs. Open health Watch
// streams never finish on their own, so the server is stopped hard once ctx
// expires.
func (g *grpcServer) Shutdown(ctx context.Context) {
	g.logger.Info().Msg("gRPC server Shutdown")
	g.stopWatch()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		g.server.Stop()
		<-stopped
	}

	if g.gRPCNetListener != nil {
		_ = g.gRPCNetListener.Close()
	}
}
