package grpc_control

import (
	"context"
	"errors"
	"fmt"
	"net"

	"benchmark-observer/src/interfaces"
	"benchmark-observer/src/logger"
	"benchmark-observer/src/server"

	"google.golang.org/grpc"
)

// ControlServer runs the control service on its own listener.
type ControlServer struct {
	Addr   string
	Logger *logger.Logger
	grpc   *grpc.Server
}

var _ interfaces.IServer = (*ControlServer)(nil)

// -----------------------------------------------------------------------------

func NewControlServer(target *server.BenchmarkServer, host string, port int, log *logger.Logger) *ControlServer {
	gs := grpc.NewServer()
	RegisterBenchmarkControlServer(gs, NewControlService(target, log))

	return &ControlServer{
		Addr:   fmt.Sprintf("%s:%d", host, port),
		Logger: log.Named("ControlServer"),
		grpc:   gs,
	}
}

// -----------------------------------------------------------------------------

func (s *ControlServer) Start() error {
	lis, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC: %w", err)
	}
	return s.Serve(lis)
}

// -----------------------------------------------------------------------------

// Serve blocks on lis. A stopped server is not an error.
func (s *ControlServer) Serve(lis net.Listener) error {
	s.Logger.Info("Starting gRPC Control Server on %s", lis.Addr())
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

// Stop drains in-flight calls, forcing the stop when ctx expires first.
func (s *ControlServer) Stop(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.grpc.Stop()
		<-done
		return ctx.Err()
	}
}
