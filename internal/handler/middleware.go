package handler

import (
	"net/http"

	"github.com/SocialApp/social-service/internal/dto"
	"github.com/SocialApp/social-service/internal/repository/redisrepo"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) securityHeadersMiddleware(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-XSS-Protection", "0")
	c.Header("Referrer-Policy", "no-referrer")
	c.Next()
}

// trafficLogMiddleware appends one JSON line per inbound request to the
// traffic log file. Observational only.
func (h *Handler) trafficLogMiddleware(c *gin.Context) {
	if h.traffic != nil {
		h.traffic.Info(
			"",
			zap.String("ip", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
	}
	c.Next()
}

// rateLimitMiddleware is a per-IP fixed window. If the limiter itself
// fails the request is let through: losing the limit beats refusing
// everyone.
func (h *Handler) rateLimitMiddleware(scope string, limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.limiter == nil {
			c.Next()
			return
		}

		key := redisrepo.RateLimitKey(scope, c.ClientIP())
		allowed, err := h.limiter.Allow(c.Request.Context(), key, limit, RATE_LIMIT_WINDOW)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			c.JSON(http.StatusTooManyRequests, dto.NewBasicResponse(false, errTooManyRequests.Error()))
			c.Abort()
			return
		}

		c.Next()
	}
}
