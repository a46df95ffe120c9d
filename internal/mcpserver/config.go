package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasmodel/parser"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Decode settings.
	Dialect  parser.Dialect
	MaxDepth int

	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// walk_refs defaults.
	RefLimit       int
	RefDetailLimit int
	MaxLimit       int

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASMODEL_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		Dialect:            envDialect("OASMODEL_DIALECT", parser.DialectAuto),
		MaxDepth:           envInt("OASMODEL_MAX_DEPTH", parser.DefaultMaxDepth),
		CacheEnabled:       envBool("OASMODEL_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASMODEL_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASMODEL_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("OASMODEL_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("OASMODEL_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASMODEL_CACHE_SWEEP_INTERVAL", 60*time.Second),
		RefLimit:           envInt("OASMODEL_REF_LIMIT", 100),
		RefDetailLimit:     envInt("OASMODEL_REF_DETAIL_LIMIT", 25),
		MaxLimit:           envInt("OASMODEL_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("OASMODEL_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("OASMODEL_ALLOW_PRIVATE_IPS", false),
	}
}

// parserOptions returns the parser options every tool decodes with.
func (c *serverConfig) parserOptions() []parser.Option {
	return []parser.Option{
		parser.WithDialect(c.Dialect),
		parser.WithMaxDepth(c.MaxDepth),
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

func envDialect(key string, fallback parser.Dialect) parser.Dialect {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := parser.ParseDialect(v)
	if err != nil {
		slog.Warn("invalid dialect env var, using default", "key", key, "value", v, "default", fallback.String())
		return fallback
	}
	return d
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
