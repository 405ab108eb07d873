package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Common application errors
var (
	ErrNotFound = NewNotFoundError("resource", "resource not found")
	ErrInternal = NewInternalError("internal server error", nil)
)

// ValidationError represents a field value rejected by a format rule
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

// NewValidationError creates a new validation error for the rejected field value
func NewValidationError(field, value string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("invalid value '%s' for field '%s'", value, field),
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// MalformedRequestError represents input that could not be interpreted:
// a missing field, unparseable JSON or an unparseable date.
type MalformedRequestError struct {
	Field   string
	Message string
}

// NewMalformedRequestError creates a new malformed request error
func NewMalformedRequestError(field, message string) *MalformedRequestError {
	return &MalformedRequestError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *MalformedRequestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed request: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("malformed request: %s", e.Message)
}

// HTTPStatus returns the HTTP status for this error
func (e *MalformedRequestError) HTTPStatus() int {
	return http.StatusBadRequest
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// HTTPStatuser interface for errors that can provide an HTTP status
type HTTPStatuser interface {
	HTTPStatus() int
}

// HTTPStatus returns the status carried by the first error in the chain
// that provides one, or 500 when none does.
func HTTPStatus(err error) int {
	var s HTTPStatuser
	if stderrors.As(err, &s) {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return stderrors.As(err, &nf)
}
