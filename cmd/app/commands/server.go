package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/users/internal/app"
	"github.com/allisson/users/internal/config"
)

// runnable is a server started and stopped by RunServer.
type runnable interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// RunServer starts the API server, and the metrics server when enabled, with graceful shutdown.
// Blocks until receiving SIGINT/SIGTERM or until one of the servers fails. Shutdown is bounded
// by SHUTDOWN_TIMEOUT_SECONDS.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Set Gin mode based on log level
	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get HTTP server from container (this initializes all dependencies)
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}
	servers := []runnable{server}

	if cfg.MetricsEnabled {
		metricsServer, err := container.MetricsServer()
		if err != nil {
			return fmt.Errorf("failed to initialize metrics server: %w", err)
		}
		servers = append(servers, metricsServer)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := serveUntilDone(ctx, logger, cfg.ShutdownTimeout, servers); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

// serveUntilDone starts every server and stops all of them once ctx is done or one of
// them fails. The first start error and any shutdown errors are returned.
func serveUntilDone(
	ctx context.Context,
	logger *slog.Logger,
	shutdownTimeout time.Duration,
	servers []runnable,
) error {
	group, groupCtx := errgroup.WithContext(ctx)
	for _, s := range servers {
		group.Go(func() error {
			return s.Start(groupCtx)
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		if ctx.Err() != nil {
			logger.Info("shutdown signal received")
		} else {
			logger.Error("server error, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		var shutdownErrors []error
		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, fmt.Errorf("shutdown: %w", err))
			}
		}
		return errors.Join(shutdownErrors...)
	})

	return group.Wait()
}
