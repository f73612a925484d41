package main

import (
	"context"
	"log"
	"time"

	"github.com/daleplay/playlist-api/internal/api"
	"github.com/daleplay/playlist-api/internal/catalog"
	"github.com/daleplay/playlist-api/internal/config"
	"github.com/daleplay/playlist-api/internal/database"
	"github.com/daleplay/playlist-api/internal/intent"
	"github.com/daleplay/playlist-api/internal/llm"
	"github.com/daleplay/playlist-api/internal/metrics"
	"github.com/daleplay/playlist-api/internal/observability"
	"github.com/daleplay/playlist-api/internal/pipeline"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sentryFlushTimeout    = 2 * time.Second
	environmentProduction = "production"
)

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize Sentry
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			Release:          "playlist-api@" + releaseVersion,
			EnableTracing:    true,
			TracesSampleRate: 1.0, // 100% sampling for now, adjust based on volume
			EnableLogs:       true,
			Debug:            cfg.Environment != environmentProduction,
			BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
				// Filter out sensitive data
				if event.Request != nil {
					event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
				}
				return event
			},
		}); err != nil {
			log.Printf("Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
			// Flush on shutdown
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
	}

	// Initialize Langfuse for LLM tracing
	observability.InitializeLangfuse(context.Background(), cfg)
	defer observability.GetClient().Flush()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to run migrations:", err)
	}

	// CloudWatch metrics (enabled in production only)
	cwMetrics, err := metrics.NewClient(context.Background(), cfg.Environment)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
		cwMetrics = &metrics.Client{}
	}

	// Build the generation pipeline
	activities, err := intent.DefaultActivities()
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to load activity table:", err)
	}
	extractor := intent.NewExtractor(activities)

	factory := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
	provider, err := factory.GetProvider(context.Background(), cfg.SelectionModel, cfg.SelectionProvider)
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to initialize LLM provider:", err)
	}
	log.Printf("🎵 Curator: provider=%s model=%s", provider.Name(), cfg.SelectionModel)

	store := catalog.NewGormStore(db)
	selector := pipeline.NewSelector(provider, cfg.SelectionModel)
	generationPipeline := pipeline.New(store, extractor, selector)
	generationPipeline.FilterCap = cfg.CatalogFilterCap
	generationPipeline.PoolSize = cfg.CandidatePoolSize

	// Set Gin mode
	if cfg.Environment == environmentProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := api.SetupRouter(api.Dependencies{
		DB:        db,
		Config:    cfg,
		Pipeline:  generationPipeline,
		Extractor: extractor,
		Store:     store,
		Metrics:   cwMetrics,
		Version:   GetVersion(),
	})

	log.Printf("🚀 Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		log.Fatal("Failed to start server:", err)
	}
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
