package telemetryv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// ServiceName is the fully-qualified gRPC service name.
	ServiceName = "sumpwatch.v1.TelemetryService"
	// LogEventMethod is the full method name of LogEvent.
	LogEventMethod = "/" + ServiceName + "/LogEvent"
	// GetHistoryMethod is the full method name of GetHistory.
	GetHistoryMethod = "/" + ServiceName + "/GetHistory"
	// SourceIDHeader is the metadata key carrying the sender's instance id.
	SourceIDHeader = "x-source-id"
)

// TelemetryServiceClient is the client API for TelemetryService.
type TelemetryServiceClient interface {
	// LogEvent delivers one event to the server's loggers.
	LogEvent(ctx context.Context, in *structpb.ListValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	// GetHistory returns the events retained by the server.
	GetHistory(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type telemetryServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTelemetryServiceClient creates a client over an existing connection.
//
//nolint:ireturn // Mirrors the shape of generated gRPC clients.
func NewTelemetryServiceClient(cc grpc.ClientConnInterface) TelemetryServiceClient {
	return &telemetryServiceClient{cc: cc}
}

func (c *telemetryServiceClient) LogEvent(
	ctx context.Context,
	in *structpb.ListValue,
	opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, LogEventMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *telemetryServiceClient) GetHistory(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, GetHistoryMethod, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// TelemetryServiceServer is the server API for TelemetryService.
type TelemetryServiceServer interface {
	LogEvent(ctx context.Context, in *structpb.ListValue) (*emptypb.Empty, error)
	GetHistory(ctx context.Context, in *emptypb.Empty) (*structpb.ListValue, error)
}

// UnimplementedTelemetryServiceServer answers every method with codes.Unimplemented.
// Embed it to stay source compatible when methods are added.
type UnimplementedTelemetryServiceServer struct{}

// LogEvent is not implemented.
func (UnimplementedTelemetryServiceServer) LogEvent(context.Context, *structpb.ListValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method LogEvent not implemented")
}

// GetHistory is not implemented.
func (UnimplementedTelemetryServiceServer) GetHistory(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetHistory not implemented")
}

// RegisterTelemetryServiceServer registers srv on s.
func RegisterTelemetryServiceServer(s grpc.ServiceRegistrar, srv TelemetryServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func logEventHandler(
	srv any,
	ctx context.Context, //nolint:revive // Argument order is fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.ListValue)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(TelemetryServiceServer).LogEvent(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: LogEventMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		//nolint:forcetypeassert // Guaranteed by HandlerType and dec above.
		return srv.(TelemetryServiceServer).LogEvent(ctx, req.(*structpb.ListValue))
	}

	return interceptor(ctx, in, info, handler)
}

func getHistoryHandler(
	srv any,
	ctx context.Context, //nolint:revive // Argument order is fixed by grpc.MethodHandler.
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(TelemetryServiceServer).GetHistory(ctx, in) //nolint:forcetypeassert // Guaranteed by HandlerType.
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetHistoryMethod,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		//nolint:forcetypeassert // Guaranteed by HandlerType and dec above.
		return srv.(TelemetryServiceServer).GetHistory(ctx, req.(*emptypb.Empty))
	}

	return interceptor(ctx, in, info, handler)
}

// ServiceDesc describes TelemetryService for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // gRPC registers services by descriptor value.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TelemetryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "LogEvent",
			Handler:    logEventHandler,
		},
		{
			MethodName: "GetHistory",
			Handler:    getHistoryHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sumpwatch/v1/telemetry.proto",
}
