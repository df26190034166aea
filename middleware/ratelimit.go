package middleware

import (
	"log"

	"github.com/study-droid/studyflow/services"
	"github.com/study-droid/studyflow/utils"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware throttles requests per authenticated user, or per
// client IP before authentication. If Redis is unreachable the request
// is let through; throttling is protection, not a correctness concern.
func RateLimitMiddleware(limiter *services.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID, exists := c.Get("user_id"); exists {
			key = userID.(string)
		}

		allowed, remaining, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Printf("rate limiter unavailable, allowing request: %v", err)
			utils.TrackError("ratelimit", "redis_unavailable")
			c.Next()
			return
		}

		if !allowed {
			utils.TrackError("ratelimit", "limit_exceeded")
			utils.TooManyRequests(c, "Rate limit exceeded", gin.H{"remaining": remaining})
			c.Abort()
			return
		}

		c.Next()
	}
}
