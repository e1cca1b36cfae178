package middleware

import (
	"strings"

	"github.com/alexanderramin/leadflow/internal/logger"
	"github.com/alexanderramin/leadflow/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	ActorIDHeader   = "X-Actor-ID"
)

const maxRequestIDLen = 128

// RequestID echoes the caller's X-Request-ID or generates one, and attaches
// it to the request context log fields.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(RequestIDHeader))
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{RequestID: id, Component: "http"})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Actor makes X-Actor-ID the acting user for the request. Without the header
// the configured default actor applies.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := strings.TrimSpace(c.GetHeader(ActorIDHeader))
		if actor != "" {
			ctx := service.WithActor(c.Request.Context(), actor)
			ctx = logger.WithLogFields(ctx, logger.LogFields{Actor: actor})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}
