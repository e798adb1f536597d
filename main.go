package main

import (
	"fmt"

	"nasa-server/services/space-tools/domain/apod"
	"nasa-server/services/space-tools/domain/marsrover"
	"nasa-server/services/space-tools/domain/neows"
	"nasa-server/services/space-tools/domain/registry"
	"nasa-server/services/space-tools/infrastructure/config"
	"nasa-server/services/space-tools/infrastructure/logger"
	"nasa-server/services/space-tools/infrastructure/nasaapi"
	"nasa-server/services/space-tools/interfaces/httpserver/middlewares"
	"nasa-server/services/space-tools/interfaces/httpserver/routes"

	apodclient "nasa-server/services/space-tools/infrastructure/apod"
	marsroverclient "nasa-server/services/space-tools/infrastructure/marsrover"
	neowsclient "nasa-server/services/space-tools/infrastructure/neows"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("http_port", cfg.HTTPPort).
		Str("log_level", cfg.LogLevel).
		Str("api_key_mode", cfg.APIKeyMode()).
		Msg("Starting Space Tools service")

	// Initialize infrastructure
	retryCfg := nasaapi.DefaultRetryConfig()
	if cfg.RetryMaxAttempts > 0 {
		retryCfg.MaxAttempts = cfg.RetryMaxAttempts
	}
	caller := nasaapi.New(nasaapi.Options{
		BaseURL:           cfg.NASABaseURL,
		APIKey:            cfg.NASAAPIKey,
		Timeout:           cfg.RequestTimeout,
		RateLimitInterval: cfg.RateLimitInterval,
		Retry:             retryCfg,
	})

	// Initialize source adapters
	apodAdapter := apod.NewAdapter(apodclient.NewClient(caller))
	neowsAdapter := neows.NewAdapter(neowsclient.NewClient(caller))
	marsroverAdapter := marsrover.NewAdapter(marsroverclient.NewClient(caller))

	// Initialize registry and cross-source query engine
	reg := registry.New(cfg.APIKeyMode(), apodAdapter, neowsAdapter, marsroverAdapter)
	engine := registry.NewEngine(apodAdapter, neowsAdapter, marsroverAdapter)

	// Initialize routes
	mcpRoute := routes.NewMCPRoute(reg)
	explorerRoute := routes.NewExplorerRoute(reg, engine)

	// Setup HTTP server
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID())
	router.Use(middlewares.RequestLogger())
	router.Use(middlewares.CORS())
	router.Use(middlewares.MetricsRecorder())

	// Health check
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "space-tools"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ready", "service": "space-tools"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Register API routes
	v1 := router.Group("/v1")
	mcpRoute.RegisterRouter(v1)
	explorerRoute.RegisterRouter(v1)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.HTTPPort)
	log.Info().Str("address", addr).Msg("Server listening")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
