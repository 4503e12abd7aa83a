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

const loginMaxAttemptsPerMinute = 10

type LoginRateLimiter struct {
	client *redis.Client
}

func NewLoginRateLimiter(client *redis.Client) *LoginRateLimiter {
	return &LoginRateLimiter{client: client}
}

// LoginRateLimit - fixed one-minute window per client IP on the login route
func (lrl *LoginRateLimiter) LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !lrl.checkLoginRateLimit(c.ClientIP()) {
			c.Header("X-RateLimit-Limit", strconv.Itoa(loginMaxAttemptsPerMinute))
			c.Header("X-RateLimit-Remaining", "0")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Too many login attempts",
				"message": "Wait a minute before trying again.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (lrl *LoginRateLimiter) checkLoginRateLimit(clientIP string) bool {
	if lrl.client == nil {
		return true // Allow if Redis unavailable
	}

	key := fmt.Sprintf("login_rate:%s", clientIP)

	val, err := lrl.client.Get(context.Background(), key).Result()
	if err != nil && err != redis.Nil {
		return true // Allow if Redis error
	}

	var currentCount int
	if err == redis.Nil {
		currentCount = 0
	} else {
		currentCount, _ = strconv.Atoi(val)
	}

	if currentCount >= loginMaxAttemptsPerMinute {
		return false
	}

	pipe := lrl.client.Pipeline()
	pipe.Incr(context.Background(), key)
	pipe.Expire(context.Background(), key, time.Minute)
	if _, err := pipe.Exec(context.Background()); err != nil {
		fmt.Printf("Login rate limiter error: %v\n", err)
	}

	return true
}
