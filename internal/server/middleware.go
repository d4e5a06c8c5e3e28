package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDCtxKey = "request_id"
)

func (s *Server) handleRequestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	c.Set(requestIDCtxKey, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

func (s *Server) handleLogging(c *gin.Context) {
	start := time.Now()
	c.Next()

	event := s.logger.Info()
	if c.Writer.Status() >= http.StatusInternalServerError {
		event = s.logger.Error()
	}
	event.
		Str("request_id", c.GetString(requestIDCtxKey)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("duration", time.Since(start)).
		Msg("handled request")
}

func (s *Server) handleAuth(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		s.logger.Warn().Msg("authorization header required")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		s.logger.Warn().Msg("invalid authorization header")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(s.opts.Token)) != 1 {
		s.logger.Warn().Msg("invalid bearer token")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}
	c.Next()
}
