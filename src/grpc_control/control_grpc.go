package grpc_control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The service only moves well-known protobuf types, so the descriptor is
// registered by hand instead of through protoc output.

const ServiceName = "benchmarkobserver.BenchmarkControl"

const (
	methodGetLogging  = "/" + ServiceName + "/GetLogging"
	methodSetLogging  = "/" + ServiceName + "/SetLogging"
	methodGetCounters = "/" + ServiceName + "/GetCounters"
)

// -----------------------------------------------------------------------------
// Server side
// -----------------------------------------------------------------------------

type BenchmarkControlServer interface {
	GetLogging(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
	SetLogging(context.Context, *wrapperspb.BoolValue) (*wrapperspb.BoolValue, error)
	GetCounters(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

func RegisterBenchmarkControlServer(s grpc.ServiceRegistrar, srv BenchmarkControlServer) {
	s.RegisterService(&BenchmarkControl_ServiceDesc, srv)
}

var BenchmarkControl_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BenchmarkControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetLogging", Handler: getLoggingHandler},
		{MethodName: "SetLogging", Handler: setLoggingHandler},
		{MethodName: "GetCounters", Handler: getCountersHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "benchmark_control",
}

// -----------------------------------------------------------------------------

func getLoggingHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BenchmarkControlServer).GetLogging(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetLogging}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BenchmarkControlServer).GetLogging(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func setLoggingHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BoolValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BenchmarkControlServer).SetLogging(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodSetLogging}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BenchmarkControlServer).SetLogging(ctx, req.(*wrapperspb.BoolValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getCountersHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BenchmarkControlServer).GetCounters(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetCounters}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BenchmarkControlServer).GetCounters(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// -----------------------------------------------------------------------------
// Client side
// -----------------------------------------------------------------------------

type BenchmarkControlClient struct {
	cc grpc.ClientConnInterface
}

func NewBenchmarkControlClient(cc grpc.ClientConnInterface) *BenchmarkControlClient {
	return &BenchmarkControlClient{cc: cc}
}

func (c *BenchmarkControlClient) GetLogging(ctx context.Context, opts ...grpc.CallOption) (bool, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, methodGetLogging, &emptypb.Empty{}, out, opts...); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

func (c *BenchmarkControlClient) SetLogging(ctx context.Context, enabled bool, opts ...grpc.CallOption) (bool, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, methodSetLogging, wrapperspb.Bool(enabled), out, opts...); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

func (c *BenchmarkControlClient) GetCounters(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodGetCounters, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
