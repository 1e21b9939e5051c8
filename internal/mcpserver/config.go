package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Input limits.
	MaxDocuments  int
	MaxInlineSize int64

	// Aggregate tool defaults.
	AggregateName  string
	EnableTracking bool
	ResponsePolicy string

	// Consolidate tool defaults.
	CO2Enabled bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SPECFUSE_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		MaxDocuments:   envInt("SPECFUSE_MAX_DOCUMENTS", 20),
		MaxInlineSize:  envInt64("SPECFUSE_MAX_INLINE_SIZE", 10*1024*1024),
		AggregateName:  envString("SPECFUSE_AGGREGATE_NAME", ""),
		EnableTracking: envBool("SPECFUSE_ENABLE_TRACKING", false),
		ResponsePolicy: envPolicy("SPECFUSE_RESPONSE_POLICY"),
		CO2Enabled:     envBool("SPECFUSE_CO2_ENABLED", false),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

// validResponsePolicies is the set of recognised response policy values.
// Must stay in sync with aggregator.ResponsePolicy constants.
var validResponsePolicies = map[string]bool{
	"last-wins":  true,
	"first-wins": true,
}

func envPolicy(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return ""
	}
	if !validResponsePolicies[v] {
		slog.Warn("invalid policy env var, ignoring", "key", key, "value", v)
		return ""
	}
	return v
}
