package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. Whether it is
// enabled is decided once, at construction, by explicit configuration.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
	disabled bool
}

func NewRateLimiter(rps float64, burst int, disabled bool) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		disabled: disabled,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	l, ok := rl.buckets[key]
	if !ok {
		l = rate.NewLimiter(rl.rps, rl.burst)
		rl.buckets[key] = l
	}
	return l
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.disabled {
			c.Next()
			return
		}
		if !rl.limiter(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
