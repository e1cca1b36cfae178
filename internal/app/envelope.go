package app

import (
	"encoding/json"

	"github.com/alexanderramin/leadflow/internal/domain"
	"github.com/alexanderramin/leadflow/internal/query"
)

// ErrorBody is the error half of an envelope.
type ErrorBody struct {
	Kind    domain.ErrorKind    `json:"kind"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// Envelope is the uniform result of every façade command and query.
type Envelope[T any] struct {
	Success    bool              `json:"success"`
	Data       T                 `json:"data,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Error      *ErrorBody        `json:"error,omitempty"`
	Message    string            `json:"message,omitempty"`
}

func succeed[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: data}
}

func failure[T any](err error) Envelope[T] {
	return Envelope[T]{
		Error: &ErrorBody{
			Kind:    domain.KindOf(err),
			Message: err.Error(),
			Fields:  domain.FieldsOf(err),
		},
	}
}

// Err returns the envelope's error kind, or "" on success.
func (e Envelope[T]) Err() domain.ErrorKind {
	if e.Error == nil {
		return ""
	}
	return e.Error.Kind
}

// MarshalJSON keeps data on paginated results so an empty page encodes as
// "data": [] rather than dropping the key.
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	if e.Success && e.Pagination != nil {
		return json.Marshal(struct {
			Success    bool              `json:"success"`
			Data       T                 `json:"data"`
			Pagination *query.Pagination `json:"pagination"`
			Message    string            `json:"message,omitempty"`
		}{e.Success, e.Data, e.Pagination, e.Message})
	}
	return json.Marshal(struct {
		Success    bool              `json:"success"`
		Data       T                 `json:"data,omitempty"`
		Pagination *query.Pagination `json:"pagination,omitempty"`
		Error      *ErrorBody        `json:"error,omitempty"`
		Message    string            `json:"message,omitempty"`
	}{e.Success, e.Data, e.Pagination, e.Error, e.Message})
}
