package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/oshokin/sump-watch/internal/api/grpc/telemetry"
	"github.com/oshokin/sump-watch/internal/api/http/status"
	"github.com/oshokin/sump-watch/internal/config"
	"github.com/oshokin/sump-watch/internal/domain/alarm"
	"github.com/oshokin/sump-watch/internal/domain/event"
	"github.com/oshokin/sump-watch/internal/logger"
	"github.com/oshokin/sump-watch/internal/notify"
	pb "github.com/oshokin/sump-watch/internal/pb/v1"
	repository "github.com/oshokin/sump-watch/internal/repository/history"
	"github.com/oshokin/sump-watch/internal/service/common"
)

// readHeaderTimeout bounds slow status API clients.
const readHeaderTimeout = 5 * time.Second

// Options controls the pump-server process and configuration.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress overrides the gRPC listen address from config.
	ListenAddress string
	// HTTPAddress overrides the status API listen address from config.
	HTTPAddress string
	// StateFile overrides the history file from config.
	StateFile string
}

// Run starts the gRPC server and, when configured, the status API. It blocks
// until the context is canceled or a server fails.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "pump-server")

	settings, err := common.LoadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}

	applyOverrides(settings, opts)

	var snsAPI notify.SNSAPI
	if common.NeedsSNS(settings.Alarms) {
		if snsAPI, err = common.NewSNSClient(ctx, ""); err != nil {
			return err
		}
	}

	repo := repository.NewFileRepository(settings.Server.StateFile)

	svc, err := newService(ctx, repo, func(seed ...event.Event) (*alarm.Clock, error) {
		return common.NewClock(ctx, settings, snsAPI, seed...)
	})
	if err != nil {
		return fmt.Errorf("initialise service: %w", err)
	}

	return serve(ctx, settings, svc)
}

// applyOverrides lets command line values win over the config file.
func applyOverrides(settings *config.Config, opts *Options) {
	if opts.ListenAddress != "" {
		settings.Server.ListenAddress = opts.ListenAddress
	}

	if opts.HTTPAddress != "" {
		settings.Server.HTTPAddress = opts.HTTPAddress
	}

	if opts.StateFile != "" {
		settings.Server.StateFile = opts.StateFile
	}
}

// serve runs both listeners until ctx ends, then stops them gracefully.
func serve(ctx context.Context, settings *config.Config, svc *service) error {
	lc := net.ListenConfig{}

	grpcListener, err := lc.Listen(ctx, "tcp", settings.Server.ListenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", settings.Server.ListenAddress, err)
	}

	grpcServer := grpc.NewServer()
	pb.RegisterTelemetryServiceServer(grpcServer, telemetry.NewServer(svc))

	var (
		httpServer   *http.Server
		httpListener net.Listener
	)

	if settings.Server.HTTPAddress != "" {
		httpListener, err = lc.Listen(ctx, "tcp", settings.Server.HTTPAddress)
		if err != nil {
			_ = grpcListener.Close()

			return fmt.Errorf("listen on %s: %w", settings.Server.HTTPAddress, err)
		}

		httpServer = &http.Server{
			Handler:           status.NewRouter(svc, accessLogger(ctx, settings.Server.AccessLogLevel)),
			ReadHeaderTimeout: readHeaderTimeout,
		}
	}

	logger.InfoKV(ctx, "Pump server listening",
		"listen_address", settings.Server.ListenAddress,
		"http_address", settings.Server.HTTPAddress,
		"state_file", settings.Server.StateFile)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := grpcServer.Serve(grpcListener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}

		return nil
	})

	if httpServer != nil {
		group.Go(func() error {
			if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve status API: %w", err)
			}

			return nil
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info(ctx, "Shutting down servers")

		grpcServer.GracefulStop()

		if httpServer == nil {
			return nil
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settings.Timeout)
		defer cancel()

		return httpServer.Shutdown(shutdownCtx)
	})

	if err = group.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Servers stopped")

	return nil
}

// accessLogger derives the status API logger with its own level.
func accessLogger(ctx context.Context, level string) *zap.SugaredLogger {
	lvl, _ := logger.ParseLogLevel(level)

	return logger.FromContext(ctx).Desugar().WithOptions(logger.WithLevel(lvl)).Sugar().Named("http")
}
