package config

import "time"

// RateLimitConfig holds settings for the fixed-window request limiter.
// Limit is the maximum number of requests a single client may issue per
// Window; Prefix namespaces the Redis counter keys.
type RateLimitConfig struct {
    Enabled bool
    Limit   int
    Window  time.Duration
    Prefix  string
}

// LoadRateLimitConfig builds a RateLimitConfig from environment variables
// with conservative defaults: 60 requests per client per minute.
func LoadRateLimitConfig() RateLimitConfig {
    return RateLimitConfig{
        Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Limit:   atoi(getenv("RATE_LIMIT_MAX", "60"), 60),
        Window:  parseDur(getenv("RATE_LIMIT_WINDOW", "1m"), time.Minute),
        Prefix:  getenv("RATE_LIMIT_PREFIX", "rl"),
    }
}
