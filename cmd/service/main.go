package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alfagnish/demo-service/internal/config"
	grpchealth "github.com/alfagnish/demo-service/internal/grpc"
	"github.com/alfagnish/demo-service/internal/logging"
	"github.com/alfagnish/demo-service/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("service.fail", "err", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(log)
	log.Info("config.loaded",
		"service", cfg.ServiceName,
		"listen", cfg.ListenAddr(),
		"grpc_health", cfg.GRPCHealthAddr(),
		"cors_origins", cfg.CORSAllowedOrigins,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)

	// 2. Optional gRPC health endpoint for orchestrator health checks.
	var healthDone chan struct{}
	if addr := cfg.GRPCHealthAddr(); addr != "" {
		hs, err := grpchealth.NewHealthServer(addr, log, cfg.ServiceName)
		if err != nil {
			return err
		}
		healthDone = make(chan struct{})
		go func() {
			defer close(healthDone)
			if err := hs.Serve(ctx); err != nil {
				errCh <- err
			}
		}()
	}

	// 3. Start the HTTP server.
	srv := server.NewHTTPServer(cfg, log)
	go func() {
		log.Info("server.start", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("server.stop", "reason", "signal")
	case runErr = <-errCh:
		log.Error("server.fail", "err", runErr)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server.shutdown.fail", "err", err)
		if runErr == nil {
			runErr = fmt.Errorf("shutdown: %w", err)
		}
	}
	if healthDone != nil {
		select {
		case <-healthDone:
		case <-shutdownCtx.Done():
		}
	}

	log.Info("server.stopped")
	return runErr
}
