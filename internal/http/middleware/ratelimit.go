package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"basegraph.app/cms/internal/http/dto"
	"basegraph.app/cms/internal/ratelimit"
)

// RateLimit counts requests per client IP under scope. Limiter failures
// let the request through.
func RateLimit(limiter ratelimit.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		res, err := limiter.Allow(ctx, scope+":"+c.ClientIP())
		if err != nil {
			slog.WarnContext(ctx, "rate limiter unavailable", "error", err, "scope", scope)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			retry := int(math.Ceil(res.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(retry, 1)))
			slog.InfoContext(ctx, "rate limit exceeded", "scope", scope, "client_ip", c.ClientIP())
			AbortWithError(c, http.StatusTooManyRequests, dto.CodeRateLimited, "too many requests")
			return
		}
		c.Next()
	}
}
