package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RateLimiter throttles requests per authenticated user using a Redis
// counter. Failures on the Redis side let the request through.
type RateLimiter struct {
	client redis.UniversalClient
	limit  int
	window time.Duration
}

func NewRateLimiter(client redis.UniversalClient, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Limit enforces the configured request budget for the given action name.
func (r *RateLimiter) Limit(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.limit <= 0 {
			c.Next()
			return
		}

		userID, ok := UserIDFromContext(c)
		if !ok {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%d", action, userID)
		ctx := c.Request.Context()

		count, err := r.client.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("[RateLimiter] Redis error, allowing request: %v", err)
			c.Next()
			return
		}

		if count == 1 {
			if err := r.client.Expire(ctx, key, r.window).Err(); err != nil {
				log.Printf("[RateLimiter] Failed to set TTL for %s: %v", key, err)
			}
		}

		if count > int64(r.limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			return
		}

		c.Next()
	}
}
