package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter handles per-user rate limiting using Redis.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
	}
}

// NewRecipeCreationRateLimiter limits how many recipes a user may create
// per hour.
func NewRecipeCreationRateLimiter(redisClient *redis.Client) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     20,
		KeyPrefix: "rate_limit:recipe_creation",
	})
}

// NewRecipeModificationRateLimiter limits updates per recipe per hour.
func NewRecipeModificationRateLimiter(redisClient *redis.Client) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     30,
		KeyPrefix: "rate_limit:recipe_modification",
	})
}

// RateLimitMiddleware returns a Gin middleware that enforces the limit for
// the authenticated user. Runs after AuthMiddleware.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
			c.Abort()
			return
		}

		rl.enforce(c, fmt.Sprintf("%v", userID))
	}
}

// PerRecipeRateLimitMiddleware scopes the limit to a user/recipe pair.
func (rl *RateLimiter) PerRecipeRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not authenticated."})
			c.Abort()
			return
		}

		rl.enforce(c, fmt.Sprintf("%v:%s", userID, c.Param("id")))
	}
}

func (rl *RateLimiter) enforce(c *gin.Context, key string) {
	allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), key)
	if err != nil {
		// A broken limiter must not take the API down with it.
		c.Header("X-RateLimit-Error", "rate limit check failed")
		c.Next()
		return
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"message":     fmt.Sprintf("You have exceeded the rate limit of %d requests per %v.", rl.config.Limit, rl.config.Window),
			"retry_after": int(time.Until(resetTime).Seconds()),
		})
		c.Abort()
		return
	}

	c.Next()
}

// IsAllowed checks if a request for the given key is allowed.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	now := time.Now()
	windowStart := now.Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := windowStart.Add(rl.config.Window)
	return count <= rl.config.Limit, remaining, resetTime, nil
}
