package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// CORS wraps github.com/rs/cors as a gin.HandlerFunc, permissive enough for
// local dashboard development against the plan/replay API.
func CORS() gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		MaxAge:           int((12 * time.Hour).Seconds()),
		AllowCredentials: false,
	})

	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == "OPTIONS" {
			ctx.AbortWithStatus(204)
			return
		}
		ctx.Next()
	}
}
