package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/exact/internal/calc/server"
	"github.com/msto63/exact/pkg/core/logging"
	"github.com/msto63/exact/pkg/core/version"
)

// shutdownTimeout bounds the graceful stop of both listeners
const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *options) *cobra.Command {
	var noHTTP bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the calc gRPC server and the HTTP gateway",
		Long: `Starts the exact calc service.

The gRPC server and the JSON/WebSocket gateway share one calc service and
one health registry. Addresses come from the [grpc] and [http] sections
of the configuration.

Examples:
  exact serve
  exact serve --no-http
  EXACT_GRPC_PORT=9301 exact serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, opts, !noHTTP)
		},
	}

	cmd.Flags().BoolVar(&noHTTP, "no-http", false, "run the gRPC server only")
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, opts *options, withHTTP bool) error {
	logger := logging.New("exact")
	cfg := opts.config

	svc, err := opts.newService()
	if err != nil {
		return err
	}

	grpcServer, err := server.New(server.Config{
		Host:             cfg.GRPC.Host,
		Port:             cfg.GRPC.Port,
		EnableReflection: cfg.GRPC.EnableReflection,
		Service:          svc,
		Logger:           logging.New("calc-server"),
	})
	if err != nil {
		return err
	}
	if err := grpcServer.StartAsync(); err != nil {
		return err
	}

	var httpServer *server.HTTPServer
	if withHTTP {
		httpServer = server.NewHTTPServer(server.HTTPConfig{
			Host:         cfg.HTTP.Host,
			Port:         cfg.HTTP.Port,
			ReadTimeout:  cfg.HTTP.ReadTimeout.Duration,
			WriteTimeout: cfg.HTTP.WriteTimeout.Duration,
			Version:      version.Gateway,
			Logger:       logging.New("calc-gateway"),
		}, svc, grpcServer.HealthRegistry())
		if err := httpServer.StartAsync(); err != nil {
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			grpcServer.Stop(stopCtx)
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "exact %s\n", version.Calc)
	fmt.Fprintf(out, "  gRPC  %s\n", grpcServer.Address())
	if httpServer != nil {
		fmt.Fprintf(out, "  HTTP  %s\n", httpServer.Address())
	}
	if src := cfg.Source(); src != "" {
		fmt.Fprintf(out, "  config %s\n", src)
	}

	<-ctx.Done()
	logger.Info("Shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if httpServer != nil {
		if err := httpServer.Stop(stopCtx); err != nil {
			logger.Warn("Gateway shutdown failed", "error", err)
		}
	}
	grpcServer.Stop(stopCtx)

	stats := svc.Stats()
	logger.Info("Stopped", "evaluations", stats.Evaluations, "rejected", stats.Rejected)
	return nil
}
