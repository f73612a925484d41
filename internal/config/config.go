package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults for the generation pipeline.
const (
	DefaultSelectionModel = "gpt-4.1-mini"
	DefaultLLMTimeout     = 60 * time.Second
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// Database
	DatabaseURL string // Postgres connection string for the catalog store

	// LLM API Keys
	OpenAIAPIKey string // OpenAI API key for GPT models
	GeminiAPIKey string // Google Gemini API key

	// Selection
	SelectionModel    string        // Curator model (provider inferred from the name)
	SelectionProvider string        // Optional explicit provider override
	LLMTimeout        time.Duration // Bound on the curator call

	// Pipeline caps (0 = package defaults)
	CatalogFilterCap  int
	CandidatePoolSize int

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	LangfusePublicKey string // Langfuse public key
	LangfuseSecretKey string // Langfuse secret key
	LangfuseHost      string // Langfuse host URL (cloud or self-hosted)
	LangfuseEnabled   bool   // Feature flag for Langfuse
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		SelectionModel:    getEnv("SELECTION_MODEL", DefaultSelectionModel),
		SelectionProvider: getEnv("SELECTION_PROVIDER", ""),
		LLMTimeout:        getDurationEnv("LLM_TIMEOUT_SECONDS", DefaultLLMTimeout),
		CatalogFilterCap:  getIntEnv("CATALOG_FILTER_CAP", 0),
		CandidatePoolSize: getIntEnv("CANDIDATE_POOL_SIZE", 0),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
