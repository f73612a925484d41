package api

import (
	"github.com/daleplay/playlist-api/internal/api/handlers"
	apimiddleware "github.com/daleplay/playlist-api/internal/api/middleware"
	"github.com/daleplay/playlist-api/internal/catalog"
	"github.com/daleplay/playlist-api/internal/config"
	"github.com/daleplay/playlist-api/internal/intent"
	"github.com/daleplay/playlist-api/internal/metrics"
	"github.com/daleplay/playlist-api/internal/pipeline"
	"github.com/daleplay/playlist-api/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies carries everything the routes need, wired once in main.
type Dependencies struct {
	DB        *gorm.DB
	Config    *config.Config
	Pipeline  *pipeline.Pipeline
	Extractor *intent.Extractor
	Store     catalog.Store
	Metrics   *metrics.Client
	Version   string
}

func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking())

	// CORS middleware
	router.Use(apimiddleware.CORS())

	exposureService := services.NewExposureService(deps.DB)

	// Health check
	healthHandler := handlers.NewHealthHandler(deps.DB)
	router.GET("/health", healthHandler.HealthCheck)

	// Runtime metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(deps.Version, exposureService)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	playlistHandler := handlers.NewPlaylistHandler(
		deps.Pipeline,
		deps.Extractor,
		deps.Store,
		exposureService,
		deps.Metrics,
		deps.Config,
	)

	v1 := router.Group("/api/v1")
	{
		// Generation endpoints
		v1.POST("/playlists/generate", playlistHandler.Generate)
		v1.POST("/prompts/validate", playlistHandler.ValidatePrompt)

		// Publishing requires a Spotify access token
		v1.POST("/playlists", apimiddleware.SpotifyToken(), playlistHandler.Publish)

		// Label-facing reporting
		v1.GET("/metrics/exposure", metricsHandler.GetExposure)
		v1.GET("/metrics/business", metricsHandler.GetBusiness)
	}

	return router
}
