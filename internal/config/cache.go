package config

import (
    "os"
    "strconv"
    "time"
)

// CacheConfig defines settings for the response cache middleware.  When
// Enabled is false or no Redis client is configured, caching is disabled.
// TTL defines the lifetime of cache entries; Prefix namespaces the keys so
// a shared Redis instance can serve several deployments.
type CacheConfig struct {
    Enabled bool
    TTL     time.Duration
    Prefix  string
}

// LoadCacheConfig reads environment variables to build a CacheConfig.
// Defaults are used when variables are not set.  Averages change with every
// submitted rating, so the default TTL is deliberately short.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled: getenv("CACHE_ENABLED", "true") == "true",
        TTL:     parseDur(getenv("CACHE_TTL", "30s"), 30*time.Second),
        Prefix:  getenv("CACHE_PREFIX", "cache"),
    }
}

// Helper functions shared with ratelimit.go.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func atoi(s string, def int) int {
    if n, err := strconv.Atoi(s); err == nil && n > 0 {
        return n
    }
    return def
}

// parseDur parses s, falling back to the knob's own default when the
// value is malformed or non-positive.
func parseDur(s string, def time.Duration) time.Duration {
    d, err := time.ParseDuration(s)
    if err != nil || d <= 0 {
        return def
    }
    return d
}
