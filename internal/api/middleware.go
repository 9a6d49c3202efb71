package api

import (
	"crypto/subtle"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pavelc4/aether-resolver/pkg/logger"
)

const slowRequest = 5 * time.Second

func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, r any) {
		logger.Error("Panic recovered", "path", c.Request.URL.Path, "error", r, "stack", string(debug.Stack()))
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	})
}

// RequestLogger logs one line per request. Query strings are masked since
// they may carry the media URL.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"client", c.ClientIP(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			args = append(args, "query", logger.MaskURL(q))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.ErrorWithDuration("Request failed", start, args...)
		case time.Since(start) > slowRequest:
			logger.InfoWithDuration("Request completed (slow)", start, args...)
		default:
			args = append(args, "duration", time.Since(start))
			logger.Debug("Request completed", args...)
		}
	}
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// APIKey requires a matching X-API-Key header. An empty key lets every
// request through.
func APIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		got := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			writeError(c, http.StatusUnauthorized, codeUnauthorized, "Missing or invalid API key")
			return
		}
		c.Next()
	}
}
