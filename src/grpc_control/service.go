package grpc_control

import (
	"context"

	"benchmark-observer/src/logger"
	"benchmark-observer/src/server"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ControlService implements the BenchmarkControlServer interface on top of a
// running BenchmarkServer.
type ControlService struct {
	Target *server.BenchmarkServer
	Logger *logger.Logger
}

var _ BenchmarkControlServer = (*ControlService)(nil)

// NewControlService creates a new instance of ControlService
func NewControlService(target *server.BenchmarkServer, log *logger.Logger) *ControlService {
	return &ControlService{
		Target: target,
		Logger: log.Named("ControlService"),
	}
}

// -----------------------------------------------------------------------------

func (s *ControlService) GetLogging(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return wrapperspb.Bool(s.Target.Interceptor().Enabled()), nil
}

// -----------------------------------------------------------------------------

func (s *ControlService) SetLogging(ctx context.Context, req *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "write_logs is required")
	}

	s.Target.Interceptor().SetEnabled(req.GetValue())
	s.Logger.Info("Logging toggled: write_logs=%t", req.GetValue())
	return wrapperspb.Bool(req.GetValue()), nil
}

// -----------------------------------------------------------------------------

// GetCounters returns the same fields as the admin API's /api/counters.
func (s *ControlService) GetCounters(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snap := s.Target.Counters().Snapshot()
	recent := s.Target.Recent().Stats()

	out, err := structpb.NewStruct(map[string]interface{}{
		"counters": map[string]interface{}{
			"tot_exectime_new":    snap.TotalExecTimeNew,
			"tot_exectime_old":    snap.TotalExecTimeOld,
			"nr_calls":            snap.Calls,
			"nr_clientdisconnect": snap.ClientDisconnects,
		},
		"recent": map[string]interface{}{
			"count":       recent.Count,
			"mean_factor": recent.MeanFactor,
			"std_factor":  recent.StdFactor,
		},
		"errors":    s.Target.Interceptor().ErrorCount(),
		"logprefix": s.Target.LogPrefix(),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode counters: %v", err)
	}
	return out, nil
}
