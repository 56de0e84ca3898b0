//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/oshokin/sump-watch/internal/config"
	"github.com/oshokin/sump-watch/internal/domain/event"
	pb "github.com/oshokin/sump-watch/internal/pb/v1"
)

// Client wraps the TelemetryService client. It implements event.Logger,
// so it can be registered on a monitor as the remote sink.
type Client struct {
	// conn is the underlying gRPC connection to the pump server.
	conn *grpc.ClientConn
	// api is the TelemetryService client.
	api pb.TelemetryServiceClient

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
	// sourceID is sent with every event.
	sourceID string
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithSourceID sets the id the server sees as the sender of events.
func WithSourceID(id string) Option {
	return func(c *Client) {
		c.sourceID = id
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial creates a client for the pump server. The connection is established lazily.
// Note: this uses insecure transport credentials; run it on the home network
// or terminate TLS in a proxy.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial pump server: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         pb.NewTelemetryServiceClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// Log sends the event to the pump server.
func (c *Client) Log(ctx context.Context, e event.Event) error {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	if c.sourceID != "" {
		callCtx = metadata.AppendToOutgoingContext(callCtx, pb.SourceIDHeader, c.sourceID)
	}

	if _, err := c.api.LogEvent(callCtx, pb.EventToProto(e)); err != nil {
		return fmt.Errorf("log event: %w", err)
	}

	return nil
}

// History fetches the events retained by the pump server.
func (c *Client) History(ctx context.Context) ([]event.Event, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetHistory(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}

	events, err := pb.HistoryFromProto(resp)
	if err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	return events, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
