package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"truckshop-platform/config"
	"truckshop-platform/pkg/apperrors"
	"truckshop-platform/pkg/logger"
)

// RateLimiterConfig holds the configuration for rate limiting
type RateLimiterConfig struct {
	MaxRequests int           // Maximum number of requests allowed per window
	Window      time.Duration // Time window for rate limiting
	KeyPrefix   string        // Redis key namespace, e.g. "ratelimit:lead:"
}

// RateLimiterMiddleware limits requests per client IP using a Redis counter
// with a windowed expiry. Guards the public lead forms against spam. When
// Redis is not configured the limiter is a no-op: availability over
// enforcement for a marketing site.
func RateLimiterMiddleware(cfg RateLimiterConfig) echo.MiddlewareFunc {
	log := logger.Get().WithComponent("rate-limiter")

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.RedisClient == nil {
				return next(c)
			}

			ctx := c.Request().Context()
			key := fmt.Sprintf("%s%s", cfg.KeyPrefix, c.RealIP())

			count, err := config.RedisClient.Incr(ctx, key).Result()
			if err != nil {
				log.Warn("Rate limit check failed, allowing request", logger.Err(err))
				return next(c)
			}
			if count == 1 {
				config.RedisClient.Expire(ctx, key, cfg.Window)
			}

			if count > int64(cfg.MaxRequests) {
				log.Warn("Rate limit exceeded", logger.RemoteIP(c.RealIP()))
				return apperrors.RespondWithError(c, &apperrors.AppError{
					Code:       apperrors.ErrCodeRateLimitExceeded,
					Message:    "Too many requests, please try again later.",
					HTTPStatus: http.StatusTooManyRequests,
				})
			}

			return next(c)
		}
	}
}
