// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// AIGatewayURL is the base URL of the OpenAI-compatible chat
	// completions gateway the generator and assistant talk to. Required.
	AIGatewayURL string

	// AIAPIKey authenticates against the AI gateway. Required.
	AIAPIKey string

	// AIModel is the model identifier sent with every completion request.
	// Defaults to "google/gemini-2.5-flash".
	AIModel string

	// PlacesAPIKey authenticates against the place-search API. Required.
	PlacesAPIKey string

	// PlacesBaseURL is the place text-search endpoint. Defaults to the
	// Google Places Text Search API.
	PlacesBaseURL string

	// PlaceLookupDelay is the pause between consecutive place lookups in
	// an enrichment batch, keeping aggregate request rate under the
	// external quota. Defaults to 100ms. Set PLACE_LOOKUP_DELAY_MS to
	// override.
	PlaceLookupDelay time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CORSOrigins:      splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AIModel:          getEnv("AI_MODEL", "google/gemini-2.5-flash"),
		PlacesBaseURL:    getEnv("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place"),
		PlaceLookupDelay: getEnvMillis("PLACE_LOOKUP_DELAY_MS", 100),
	}

	var missing []string

	for _, req := range []struct {
		key  string
		dest *string
	}{
		{"DATABASE_URL", &cfg.DatabaseURL},
		{"AI_GATEWAY_URL", &cfg.AIGatewayURL},
		{"AI_API_KEY", &cfg.AIAPIKey},
		{"PLACES_API_KEY", &cfg.PlacesAPIKey},
	} {
		*req.dest = os.Getenv(req.key)
		if *req.dest == "" {
			missing = append(missing, req.key)
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvMillis reads a millisecond count from the environment, falling
// back when unset or unparseable.
func getEnvMillis(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(fallback) * time.Millisecond
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
