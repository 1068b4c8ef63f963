package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wordbook/api/internal/metrics"
	"github.com/wordbook/api/internal/ratelimit"
)

// RateLimit counts the request against action for the authenticated user, or
// the client IP when there is none. Limiter failures let the request through.
// A nil limiter disables the check.
func RateLimit(l *ratelimit.Limiter, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		clientID := c.ClientIP()
		if id := c.GetString(ContextUserID); id != "" {
			clientID = "user:" + id
		}

		res, err := l.Check(c.Request.Context(), clientID, action)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "rate limiter unavailable", "action", action, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt, 10))

		if !res.Allowed {
			metrics.RecordRateLimited(action)
			abort(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
