package telemetry

import (
	"context"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/sump-watch/internal/domain/event"
	pb "github.com/oshokin/sump-watch/internal/pb/v1"
)

// Service abstracts the business operations the transport layer depends on.
type Service interface {
	LogEvent(ctx context.Context, sourceID string, e event.Event) error
	History(ctx context.Context) []event.Event
}

// Server implements the TelemetryService gRPC API.
type Server struct {
	pb.UnimplementedTelemetryServiceServer

	// service receives decoded events.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// LogEvent decodes the event and passes it to the service.
func (s *Server) LogEvent(ctx context.Context, req *structpb.ListValue) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "event is required")
	}

	e, err := pb.EventFromProto(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode event: %v", err)
	}

	if err = s.service.LogEvent(ctx, sourceID(ctx), e); err != nil {
		return nil, status.Error(codes.Internal, "unable to record event")
	}

	return new(emptypb.Empty), nil
}

// GetHistory returns every event retained by the service.
func (s *Server) GetHistory(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	return pb.HistoryToProto(s.service.History(ctx)), nil
}

// sourceID reads the sender id from incoming metadata.
func sourceID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}

	values := md.Get(pb.SourceIDHeader)
	if len(values) == 0 {
		return ""
	}

	return strings.TrimSpace(values[0])
}
