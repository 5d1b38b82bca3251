package middleware

import (
	"log/slog"
	"time"

	"CaloriesAdvisor/internal/lib/sl"

	"github.com/gin-gonic/gin"
)

// Logger writes one line per request. Image bodies are never logged.
func Logger(log *slog.Logger) gin.HandlerFunc {
	log = log.With(sl.Module("http"))
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", RequestIDFrom(c)),
		}
		if c.Writer.Status() >= 500 {
			log.Error("request completed", attrs...)
			return
		}
		log.Info("request completed", attrs...)
	}
}
