package http

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"fooddelivery/internal/metrics"
	"fooddelivery/internal/ratelimit"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RateLimiter decides whether a client may make another request.
type RateLimiter interface {
	CheckAndConsume(ctx context.Context, clientID string) (ratelimit.Decision, error)
}

type rateLimitResponse struct {
	Error             string `json:"error"`
	RetryAfterSeconds int    `json:"retry_after_seconds"`
}

// unlimitedPaths are never rate limited.
var unlimitedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// RateLimit rejects a client with 429 once it has used up its window. The
// client is identified by c.RealIP, so the echo instance's IPExtractor must
// not trust headers from arbitrary peers.
func RateLimit(limiter RateLimiter, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = func(c echo.Context) bool {
			return unlimitedPaths[c.Request().URL.Path]
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			decision, err := limiter.CheckAndConsume(c.Request().Context(), c.RealIP())
			if err != nil || decision.Allowed {
				return next(c)
			}

			retryAfter := max(int(math.Ceil(decision.RetryAfter.Seconds())), 1)
			c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
			return c.JSON(http.StatusTooManyRequests, rateLimitResponse{
				Error:             "Rate limit exceeded. Try later.",
				RetryAfterSeconds: retryAfter,
			})
		}
	}
}

// RequestDuration observes the latency of every request by method, route
// pattern and status code.
func RequestDuration() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			metrics.HTTPRequestDuration.
				WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).
				Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
