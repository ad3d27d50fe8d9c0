package middleware

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"limo-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter throttles per client IP. With a redis client it keeps a fixed
// window counter with TTL, so the limit holds across instances. Without one
// it falls back to a process-local limiter map: best-effort only, resets on
// restart, and gives no guarantee when several instances run.
type RateLimiter struct {
	rdb      *redis.Client
	window   time.Duration
	maxHits  int
	limiters sync.Map // ip -> *rate.Limiter (local fallback)
}

// NewRedisClient builds a client from REDIS_ADDR env; nil when unset.
func NewRedisClient() *redis.Client {
	addr := utils.EnvOrDefault("REDIS_ADDR", "")
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: utils.EnvOrDefault("REDIS_PASSWORD", ""),
	})
}

func NewRateLimiter(rdb *redis.Client, maxHits int, window time.Duration) *RateLimiter {
	if maxHits <= 0 {
		maxHits = 30
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{rdb: rdb, window: window, maxHits: maxHits}
}

// Allow reports whether key may proceed.
func (l *RateLimiter) Allow(ctx context.Context, key string) bool {
	if l.rdb != nil {
		return l.allowRedis(ctx, key)
	}
	return l.localLimiter(key).Allow()
}

func (l *RateLimiter) allowRedis(ctx context.Context, key string) bool {
	rkey := "ratelimit:" + key
	count, err := l.rdb.Incr(ctx, rkey).Result()
	if err != nil {
		// redis down: fail open, same outcome as the local fallback on restart
		log.Printf("rate limiter redis error: %v", err)
		return true
	}
	if count == 1 {
		l.rdb.Expire(ctx, rkey, l.window)
	}
	return count <= int64(l.maxHits)
}

func (l *RateLimiter) localLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	perSecond := float64(l.maxHits) / l.window.Seconds()
	lim := rate.NewLimiter(rate.Limit(perSecond), l.maxHits)
	actual, _ := l.limiters.LoadOrStore(key, lim)
	return actual.(*rate.Limiter)
}

// Middleware applies the limiter keyed by client IP.
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.Request.Context(), c.ClientIP()) {
			c.Header("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "too many requests"})
			return
		}
		c.Next()
	}
}
