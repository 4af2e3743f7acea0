package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request (method, path, status, latency),
// matching the teacher's bare log.Printf style used throughout cmd/api and
// internal/data rather than a structured logging library.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Printf("[API] %s %s %d (%v)", c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
