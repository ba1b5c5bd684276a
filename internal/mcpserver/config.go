package mcpserver

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/erraggy/flatjson/flattener"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled bool
	CacheMaxSize int

	// Input limits.
	MaxInlineSize int64
	MaxDepth      int

	// Flatten tool defaults.
	Separator          string
	AltArrayFlattening bool
	Collision          flattener.CollisionPolicy
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from FLATJSON_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("FLATJSON_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("FLATJSON_CACHE_MAX_SIZE", 64),
		MaxInlineSize:      envInt64("FLATJSON_MAX_INLINE_SIZE", 10*1024*1024),
		MaxDepth:           envDepth("FLATJSON_MAX_DEPTH", 1000),
		Separator:          envString("FLATJSON_SEPARATOR", "."),
		AltArrayFlattening: envBool("FLATJSON_ALT_ARRAYS", false),
		Collision:          envCollision("FLATJSON_COLLISION"),
	}
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

// envDepth is envInt that also accepts 0, which turns the limit off.
func envDepth(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		slog.Warn("invalid depth env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envCollision(key string) flattener.CollisionPolicy {
	v := os.Getenv(key)
	policy, err := flattener.ParseCollisionPolicy(v)
	if err != nil {
		slog.Warn("invalid collision env var, using default", "key", key, "value", v, "default", flattener.CollisionOverwrite.String())
		return flattener.CollisionOverwrite
	}
	return policy
}
