package handlers

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"tpo_system/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// limitTier selects the 429 payload variant for a limiter.
type limitTier int

const (
	tierGeneral limitTier = iota
	tierAuth
)

// clientKey identifies the caller for rate limiting. Proxy headers are
// honored before falling back to the socket address.
func clientKey(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// rateLimitMiddleware rejects requests over the tier's ceiling with a 429
// carrying retryAfter seconds and the tier's type tag. The client UI keys
// its messaging off both fields, so the payload is never dropped.
func (h *Handler) rateLimitMiddleware(limiter ratelimit.Limiter, tier limitTier) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := clientKey(c.Request)

		allowed, retryAfter := limiter.Allow(key)
		if allowed {
			c.Next()
			return
		}

		retrySeconds := int(retryAfter.Seconds() + 0.5)
		if retrySeconds < 1 {
			retrySeconds = 1
		}

		if h.log != nil {
			h.log.Warnw("rate_limit_exceeded", "key", key, "path", c.Request.URL.Path,
				"tier", int(tier), "retry_after_s", retrySeconds)
		}

		c.Writer.Header().Set("Retry-After", strconv.Itoa(retrySeconds))

		if tier == tierAuth {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":      "Too Many Authentication Attempts",
				"message":    "You have exceeded the login attempt limit. This is for security purposes.",
				"retryAfter": retrySeconds,
				"type":       typeAuthRateLimited,
			})
			return
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":      "Too Many Requests",
			"message":    "You have exceeded the rate limit. Please try again later.",
			"retryAfter": retrySeconds,
			"type":       typeRateLimited,
		})
	}
}
