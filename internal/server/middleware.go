package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bizdocs/internal/logger"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "requestId"
	slowRequest     = 200 * time.Millisecond
)

// requestID propagates a caller supplied X-Request-Id or assigns a new one,
// and stores a request scoped logger in the request context.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		l := logger.WithRequestID(id)
		c.Request = c.Request.WithContext(logger.IntoContext(c.Request.Context(), l))
		c.Next()
	}
}

func accessLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		level := zerolog.InfoLevel
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			level = zerolog.ErrorLevel
		case status >= http.StatusBadRequest || latency > slowRequest:
			level = zerolog.WarnLevel
		}
		log.WithLevel(level).Str("request_id", c.GetString(requestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Int("bytes", c.Writer.Size()).
			Msg("HTTP request")
	}
}

func (s *Server) recover(c *gin.Context, recovered any) {
	logger.FromContext(c.Request.Context()).Error().
		Interface("panic", recovered).
		Str("path", c.Request.URL.Path).
		Msg("Handler panicked")
	abortWithError(c, http.StatusInternalServerError, "internal_error", "unexpected server error")
}
