package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"todo-api/internal/domain/apperror"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/redis"
)

// RateLimit throttles requests per client IP. A nil limiter disables throttling.
// Redis failures let the request through.
func RateLimit(limiter *redis.RateLimiter, scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limiter == nil {
			return next
		}
		return func(c echo.Context) error {
			result, err := limiter.Allow(c.Request().Context(), scope+":"+c.RealIP())
			if err != nil {
				log.Warn("Rate limiter unavailable, allowing request", zap.String("scope", scope), zap.Error(err))
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			if !result.Allowed {
				seconds := int(math.Ceil(result.RetryAfter.Seconds()))
				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return apperror.TooManyRequests(msg.GetMessage("user.error.rate-limited", result.RetryAfter.Round(time.Second).String()))
			}
			return next(c)
		}
	}
}
