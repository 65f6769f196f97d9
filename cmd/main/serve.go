package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"benchmark-observer/src/config"
	"benchmark-observer/src/grpc_control"
	"benchmark-observer/src/interfaces"
	"benchmark-observer/src/logger"
	"benchmark-observer/src/server"
	"benchmark-observer/src/sink"
	"benchmark-observer/src/storage"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// serveOptions are command line overrides on top of the config file.
type serveOptions struct {
	host      string
	port      int
	logDir    string
	noLogs    bool
	withAdmin bool
}

func (o *serveOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVar(&o.port, "port", 0, "listen port (overrides config)")
	cmd.Flags().StringVar(&o.logDir, "log-dir", "", "directory for the run log files (overrides config)")
	cmd.Flags().BoolVar(&o.noLogs, "no-logs", false, "start with write_logs disabled")
	cmd.Flags().BoolVar(&o.withAdmin, "admin", false, "enable the admin API and gRPC control service")
}

func (o serveOptions) apply(cfg *config.Config) {
	if o.host != "" {
		cfg.Host = o.host
	}
	if o.port != 0 {
		cfg.Port = o.port
	}
	if o.logDir != "" {
		cfg.LogDir = o.logDir
	}
	if o.noLogs {
		cfg.WriteLogs = false
	}
	if o.withAdmin {
		cfg.Admin.Enabled = true
	}
}

// -----------------------------------------------------------------------------

func newServeCmd(cfgPath *string) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the benchmark endpoint until SIGINT/SIGTERM",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *cfgPath, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

// -----------------------------------------------------------------------------

func runServe(ctx context.Context, cfgPath string, opts serveOptions) error {
	// 1. Config
	cfg, err := config.NewConfig(cfgPath)
	if err != nil {
		return err
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// 2. Logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	// 3. Log sink, named after the start minute
	prefix := sink.LogPrefix(time.Now())
	logSink, err := sink.NewFileSink(cfg.LogDir, prefix)
	if err != nil {
		return fmt.Errorf("failed to open log files: %w", err)
	}

	// 4. Record store (optional)
	initCtx, cancelInit := context.WithTimeout(ctx, 30*time.Second)
	store, err := storage.NewRecordStore(initCtx, cfg.MConfig, prefix, appLogger)
	cancelInit()
	if err != nil {
		_ = logSink.Close()
		return fmt.Errorf("failed to init record store: %w", err)
	}

	// 5. Servers, stopped in this order
	srv := server.NewBenchmarkServer(cfg.MConfig, appLogger.Named("Server"), logSink, store)

	var servers []interfaces.IServer
	if cfg.Admin.Enabled {
		servers = append(servers, server.NewAdminServer(srv, appLogger))
		if cfg.Admin.GrpcPort > 0 {
			servers = append(servers, grpc_control.NewControlServer(srv, cfg.Admin.Host, cfg.Admin.GrpcPort, appLogger))
		}
	}
	servers = append(servers, srv)

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, len(servers))
	for _, s := range servers {
		s := s // per-iteration copy; module targets go 1.21 loop semantics
		go func() { errCh <- s.Start() }()
	}

	// 6. Wait for a signal or a listener failure
	var runErr error
	select {
	case <-sigCtx.Done():
		appLogger.Info("Shutting down...")
	case runErr = <-errCh:
		if runErr != nil {
			appLogger.Error("Listener failed: %v", runErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil && runErr == nil {
			runErr = err
		}
	}

	appLogger.Info("Shutdown complete.")
	return runErr
}
