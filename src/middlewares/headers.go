package middlewares

import (
	"time"

	"cbs/src/lib"

	"github.com/gin-gonic/gin"
)

func SecureHeaders(ctx *gin.Context) {
	ctx.Header("X-Frame-Options", "DENY")
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Header("Referrer-Policy", "no-referrer")
	ctx.Next()
}

// RateLimit caps requests per client IP over the window. Counters live
// in redis when available and fall back to process memory otherwise.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := "rl:" + ctx.ClientIP() + ":" + ctx.FullPath()
		if !lib.Allow(key, limit, window) {
			ctx.AbortWithStatusJSON(429, gin.H{"error": "too many requests"})
			return
		}
		ctx.Next()
	}
}
