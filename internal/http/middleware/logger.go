package middleware

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/gin-gonic/gin"
)

const errorKindKey = "leadflow.error_kind"

// SetErrorKind records the failure kind of the envelope being written so the
// request log can report it.
func SetErrorKind(c *gin.Context, kind domain.ErrorKind) {
	c.Set(errorKindKey, string(kind))
}

// Logger writes one line per request. Query values are never logged because
// search terms hold client names and emails; only the parameter names are.
// Requests to quietPaths log at debug.
func Logger(quietPaths ...string) gin.HandlerFunc {
	quiet := make(map[string]bool, len(quietPaths))
	for _, p := range quietPaths {
		quiet[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		ctx := c.Request.Context()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		attrs := []any{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
		}
		if keys := queryKeys(c); keys != "" {
			attrs = append(attrs, "query_keys", keys)
		}
		if kind := c.GetString(errorKindKey); kind != "" {
			attrs = append(attrs, "error_kind", kind)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			slog.ErrorContext(ctx, "request failed", attrs...)
		case status >= 400:
			slog.WarnContext(ctx, "request rejected", attrs...)
		case quiet[c.Request.URL.Path]:
			slog.DebugContext(ctx, "request", attrs...)
		default:
			slog.InfoContext(ctx, "request", attrs...)
		}
	}
}

func queryKeys(c *gin.Context) string {
	values := c.Request.URL.Query()
	if len(values) == 0 {
		return ""
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
