package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	DatabaseURL     string
	CORSAllowOrigin []string

	GeminiAPIKey string
	OpenAIAPIKey string
	ClaudeAPIKey string

	GeminiModel string
	OpenAIModel string
	ClaudeModel string

	AnalysisTimeout time.Duration
	ContentTimeout  time.Duration
	FetchTimeout    time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		DatabaseURL:     dbURL,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		ClaudeAPIKey: os.Getenv("CLAUDE_API_KEY"),

		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
		OpenAIModel: getEnv("OPENAI_MODEL", "gpt-4-turbo-preview"),
		ClaudeModel: getEnv("CLAUDE_MODEL", "claude-3-5-sonnet-20241022"),

		AnalysisTimeout: getEnvSeconds("ANALYSIS_TIMEOUT_SECONDS", 30*time.Second),
		ContentTimeout:  getEnvSeconds("CONTENT_TIMEOUT_SECONDS", 120*time.Second),
		FetchTimeout:    getEnvSeconds("FETCH_TIMEOUT_SECONDS", 30*time.Second),
	}
}

// HasAllProviderKeys reports whether every provider credential is configured.
// Multi-provider analysis refuses to run with a partial set.
func (c Config) HasAllProviderKeys() bool {
	return c.GeminiAPIKey != "" && c.OpenAIAPIKey != "" && c.ClaudeAPIKey != ""
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		log.Printf("config: %s invalid, using default: %v", key, def)
		return def
	}
	return time.Duration(parsed) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}
