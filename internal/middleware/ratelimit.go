package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/himanshu1091/store-rating-api/internal/config"
)

// RateLimit returns a fixed-window request limiter backed by Redis. Each
// client gets a counter per window keyed on its identity (user id when
// authenticated, client IP otherwise); once the counter passes the limit,
// requests are rejected with 429 until the window expires. A Redis failure
// lets the request through: the limiter protects the service, it is not a
// correctness dependency.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := rateKey(cfg.Prefix, cfg.Window, c)

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				// First hit in this window sets the expiry.
				_ = rdb.Expire(ctx, key, cfg.Window).Err()
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			remaining := int64(cfg.Limit) - count
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.Limit) {
				ttl, err := rdb.TTL(ctx, key).Result()
				if err != nil || ttl < 0 {
					ttl = cfg.Window
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(ttl/time.Second)+1))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}

// rateKey buckets requests per client per window. Authenticated requests
// are keyed by user id so one noisy client cannot exhaust a shared NAT IP.
func rateKey(prefix string, window time.Duration, c echo.Context) string {
	who := "ip:" + c.RealIP()
	if id, ok := CurrentIdentity(c); ok {
		who = fmt.Sprintf("user:%d", id.UserID)
	}
	// Nanosecond arithmetic so sub-second windows bucket correctly.
	bucket := time.Now().UnixNano() / int64(window)
	return fmt.Sprintf("%s:%s:%d", prefix, who, bucket)
}
