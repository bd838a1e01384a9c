package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	FrontendURL  string // Allowed CORS origin

	JWTSecret string
	TokenTTL  time.Duration

	GeminiAPIKey string
	GeminiModel  string
	// LLMTimeout bounds a single model call. Zero means no timeout.
	LLMTimeout time.Duration
}

// Load loads configuration from environment variables or sets defaults.
// A local .env file is read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	ttlDays, err := strconv.Atoi(getEnv("TOKEN_TTL_DAYS", "30"))
	if err != nil {
		return nil, err
	}

	llmTimeout, err := time.ParseDuration(getEnv("LLM_TIMEOUT", "0s"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:   port,
		DatabasePath: getEnv("DATABASE_PATH", "./rewritely.db"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		TokenTTL:     time.Duration(ttlDays) * 24 * time.Hour,
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMTimeout:   llmTimeout,
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
