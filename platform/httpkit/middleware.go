// Package httpkit provides HTTP middleware infrastructure.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"
	"sync"
	"time"

	"tune_outbound_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// RequestLogger logs HTTP requests with timing.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()

		log.HTTPRequest(c.Request.Method, path, status, float64(latency.Milliseconds()), clientIP)
	}
}

// RequestID assigns a request id header usable for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Header("X-Request-ID", id)
		c.Set(string(logger.RequestIDKey), id)
		c.Next()
	}
}

// SecurityHeaders adds security headers to responses.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		// Only add HSTS when serving TLS
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

// KeyRateLimiter manages per-API-key rate limiters. State is held by the
// instance, never at package level, so tests can construct isolated limiters.
type KeyRateLimiter struct {
	limiters sync.Map
	log      *logger.Logger
}

// NewKeyRateLimiter creates a new per-key rate limiter.
func NewKeyRateLimiter(log *logger.Logger) *KeyRateLimiter {
	return &KeyRateLimiter{log: log}
}

func (k *KeyRateLimiter) getLimiter(keyHash string, perMinute int) *rate.Limiter {
	if limiter, ok := k.limiters.Load(keyHash); ok {
		return limiter.(*rate.Limiter)
	}
	newLimiter := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
	actual, _ := k.limiters.LoadOrStore(keyHash, newLimiter)
	return actual.(*rate.Limiter)
}

// Allow reports whether the key identified by keyHash may proceed under its
// configured per-minute budget.
func (k *KeyRateLimiter) Allow(keyHash string, perMinute int) bool {
	return k.getLimiter(keyHash, perMinute).Allow()
}

// RateLimit returns middleware enforcing the authenticated key's budget.
// Must run after the API-key middleware.
func (k *KeyRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetAPIKey(c)
		if key == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing API key"})
			return
		}

		if !k.Allow(key.KeyHash, key.RateLimitPerMinute) {
			if k.log != nil {
				k.log.RateLimitExceeded(key.Name, c.Request.URL.Path)
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
