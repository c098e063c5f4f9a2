package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/allisson/pib/internal/metrics"
	pibHTTP "github.com/allisson/pib/internal/pib/http"
)

// ServerConfig holds the settings for the API server.
type ServerConfig struct {
	Host string
	Port int

	RateLimitEnabled        bool
	RateLimitRequestsPerSec float64
	RateLimitBurst          int

	CORSEnabled      bool
	CORSAllowOrigins string

	MetricsEnabled   bool
	MetricsNamespace string
	MeterProvider    otelmetric.MeterProvider
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates the API server and registers all routes.
func NewServer(
	cfg ServerConfig,
	logger *slog.Logger,
	identityHandler *pibHTTP.IdentityHandler,
	keyHandler *pibHTTP.KeyHandler,
	certificateHandler *pibHTTP.CertificateHandler,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))

	if cfg.MetricsEnabled && cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.RateLimitEnabled {
		router.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
	}

	server := &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router: router,
		logger: logger,
	}

	server.registerRoutes(identityHandler, keyHandler, certificateHandler)

	return server
}

// registerRoutes wires all API endpoints into the router.
func (s *Server) registerRoutes(
	identityHandler *pibHTTP.IdentityHandler,
	keyHandler *pibHTTP.KeyHandler,
	certificateHandler *pibHTTP.CertificateHandler,
) {
	s.router.GET("/health", HealthHandler())
	s.router.GET("/ready", ReadinessHandler(context.Background()))

	v1 := s.router.Group("/v1")

	identities := v1.Group("/identities")
	identities.POST("", identityHandler.AddHandler)
	identities.GET("", identityHandler.ExistsHandler)
	identities.DELETE("", identityHandler.DeleteHandler)
	identities.GET("/default", identityHandler.GetDefaultHandler)
	identities.PUT("/default", identityHandler.SetDefaultHandler)

	keys := v1.Group("/keys")
	keys.POST("", keyHandler.AddHandler)
	keys.GET("", keyHandler.GetHandler)
	keys.DELETE("", keyHandler.DeleteHandler)
	keys.GET("/exists", keyHandler.ExistsHandler)
	keys.GET("/names", keyHandler.ListHandler)
	keys.PATCH("/status", keyHandler.UpdateStatusHandler)
	keys.GET("/default", keyHandler.GetDefaultHandler)
	keys.PUT("/default", keyHandler.SetDefaultHandler)

	certificates := v1.Group("/certificates")
	certificates.POST("", certificateHandler.AddHandler)
	certificates.GET("", certificateHandler.GetHandler)
	certificates.DELETE("", certificateHandler.DeleteHandler)
	certificates.GET("/exists", certificateHandler.ExistsHandler)
	certificates.GET("/default", certificateHandler.GetDefaultHandler)
	certificates.PUT("/default", certificateHandler.SetDefaultHandler)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
