// Package http provides the HTTP servers, router and cross-cutting middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/allisson/users/internal/config"
	"github.com/allisson/users/internal/metrics"
	userHTTP "github.com/allisson/users/internal/user/http"
)

// UserCounter reports the number of stored users. The readiness probe uses it to check the store.
type UserCounter interface {
	Count(ctx context.Context) (int, error)
}

// Server is the API HTTP server.
type Server struct {
	server      *http.Server
	router      *gin.Engine
	logger      *slog.Logger
	userCounter UserCounter

	// background stops goroutines started by middleware when the server shuts down.
	background context.Context
	stop       context.CancelFunc
	shutdown   atomic.Bool
}

// NewServer creates a new API server. Call SetupRouter before Start.
func NewServer(host string, port int, logger *slog.Logger, userCounter UserCounter) *Server {
	background, stop := context.WithCancel(context.Background())
	return &Server{
		logger:      logger,
		userCounter: userCounter,
		background:  background,
		stop:        stop,
		server:      newHTTPServer(host, port, nil),
	}
}

// newHTTPServer returns an http.Server with the timeouts shared by the API and metrics servers.
func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// SetupRouter builds the Gin engine with middleware, probes and the user routes.
// A nil meterProvider disables HTTP metrics.
func (s *Server) SetupRouter(
	cfg *config.Config,
	userHandler *userHTTP.UserHandler,
	meterProvider metric.MeterProvider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api/user")
	if cfg.RateLimitEnabled {
		api.Use(RateLimitMiddleware(s.background, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	userHandler.RegisterRoutes(api)

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
// Readiness reports not_ready from this point on.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.shutdown.Store(true)
	s.stop()
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if s.shutdown.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"server": "shutting_down"},
		})
		return
	}

	if s.userCounter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"user_store": "error"},
		})
		return
	}

	count, err := s.userCounter.Count(c.Request.Context())
	if err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"user_store": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"user_store": "ok"},
		"users":      count,
	})
}
