package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexanderramin/leadflow/internal/app"
	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/http/middleware"
	"github.com/alexanderramin/leadflow/internal/query"
	"github.com/gin-gonic/gin"
)

// StatusFor maps an error kind onto an HTTP status.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindState:
		return http.StatusUnprocessableEntity
	case domain.KindPersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respond[T any](c *gin.Context, okStatus int, env app.Envelope[T]) {
	if env.Success {
		c.JSON(okStatus, env)
		return
	}
	middleware.SetErrorKind(c, env.Err())
	c.JSON(StatusFor(env.Err()), env)
}

func fail(c *gin.Context, err error) {
	middleware.SetErrorKind(c, domain.KindOf(err))
	c.JSON(StatusFor(domain.KindOf(err)), app.Envelope[any]{
		Error: &app.ErrorBody{
			Kind:    domain.KindOf(err),
			Message: err.Error(),
			Fields:  domain.FieldsOf(err),
		},
	})
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, domain.NewValidationError("invalid request body: "+err.Error()))
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be empty.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		fail(c, domain.NewValidationError("invalid request body: "+err.Error()))
		return false
	}
	return true
}

var reservedParams = map[string]bool{
	"page": true, "limit": true, "search": true, "sortBy": true, "sortOrder": true,
}

// parseQuery reads page, limit, search, sortBy and sortOrder. Every other
// query parameter becomes a filter; the last value wins.
func parseQuery(c *gin.Context) (query.Query, error) {
	q := query.Query{
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: query.SortOrder(c.Query("sortOrder")),
	}

	var fields []domain.FieldError
	for _, p := range []struct {
		name string
		dst  *int
	}{{"page", &q.Page}, {"limit", &q.Limit}} {
		raw := strings.TrimSpace(c.Query(p.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, domain.FieldError{Field: p.name, Msg: "must be an integer"})
			continue
		}
		*p.dst = n
	}
	if len(fields) > 0 {
		return q, domain.NewValidationError("invalid query", fields...)
	}

	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] || len(values) == 0 {
			continue
		}
		if v := strings.TrimSpace(values[len(values)-1]); v != "" {
			q = q.WithFilter(key, v)
		}
	}
	return q, nil
}
