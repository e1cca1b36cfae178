package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies failures so the façade can map them to a response
// envelope (and the HTTP layer to a status code).
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindNotFound    ErrorKind = "not_found"
	KindPersistence ErrorKind = "persistence"
	KindState       ErrorKind = "state"
	KindConflict    ErrorKind = "conflict"
	KindInternal    ErrorKind = "internal"
)

// FieldError represents a single field's validation error.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"message"`
}

func (e FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

// Error is the typed error carried through repositories and services.
type Error struct {
	Kind    ErrorKind
	Op      string
	Entity  EntityType
	ID      string
	Message string
	Fields  []FieldError
	Err     error
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidation  = &Error{Kind: KindValidation}
	ErrNotFound    = &Error{Kind: KindNotFound}
	ErrPersistence = &Error{Kind: KindPersistence}
	ErrState       = &Error{Kind: KindState}
	ErrConflict    = &Error{Kind: KindConflict}
)

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Message != "":
		b.WriteString(e.Message)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString(string(e.Kind))
	}
	if len(e.Fields) > 0 {
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = f.Error()
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(")")
	}
	if e.Message != "" && e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so callers can write
// errors.Is(err, domain.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the kind of err, or KindInternal when err is not typed.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// FieldsOf returns the per-field validation details carried by err, if any.
func FieldsOf(err error) []FieldError {
	var de *Error
	if errors.As(err, &de) {
		return de.Fields
	}
	return nil
}

func NewValidationError(msg string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func NewNotFoundError(entity EntityType, id string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s %q not found", entity, id),
	}
}

func NewPersistenceError(op string, err error) *Error {
	return &Error{Kind: KindPersistence, Op: op, Message: "storage failure", Err: err}
}

func NewStateError(entity EntityType, id, msg string) *Error {
	return &Error{Kind: KindState, Entity: entity, ID: id, Message: msg}
}

func NewConflictError(entity EntityType, id string, expected, actual int) *Error {
	return &Error{
		Kind:    KindConflict,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s %q was modified concurrently (version %d, stored %d)", entity, id, expected, actual),
	}
}
