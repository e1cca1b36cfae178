package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into an internal-error envelope.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				slog.ErrorContext(ctx, "panic recovered",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, app.Envelope[any]{
					Error: &app.ErrorBody{Kind: domain.KindInternal, Message: "internal server error"},
				})
			}
		}()
		c.Next()
	}
}
