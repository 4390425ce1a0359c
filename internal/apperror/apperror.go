package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrStore      = errors.New("store error")
)

// FieldError describes one violated constraint on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag,omitempty"`
	Message string `json:"message"`
}

// ValidationError carries every violated constraint of a rejected input, not just the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Add appends a field violation and returns the receiver for chaining.
func (e *ValidationError) Add(field, tag, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Tag: tag, Message: message})
	return e
}

// OrNil returns nil when no violation was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found with id %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

type ConflictError struct {
	Resource string
	Key      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists for %s", e.Resource, e.Key)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// StoreError wraps a persistence failure. Callers may retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStore, e.Err}
}

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

func Validation(field, tag, message string) *ValidationError {
	return (&ValidationError{}).Add(field, tag, message)
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func Conflict(resource, key string) *ConflictError {
	return &ConflictError{Resource: resource, Key: key}
}

func Store(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

// Forbidden returns an error indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}
