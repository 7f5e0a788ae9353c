package common

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies an application error for HTTP translation
type ErrorKind string

const (
	// KindValidation is a client error: a required field is missing or malformed
	KindValidation ErrorKind = "validation"
	// KindIntegrity is a client-data integrity failure, e.g. a signature mismatch
	KindIntegrity ErrorKind = "integrity"
	// KindNotFound means the addressed record does not exist
	KindNotFound ErrorKind = "not_found"
	// KindUpstream is a gateway, mail-provider or persistence failure
	KindUpstream ErrorKind = "upstream"
	// KindMisconfigured means a required secret or setting is absent at call time
	KindMisconfigured ErrorKind = "misconfigured"
	// KindInternal is any other server-side failure
	KindInternal ErrorKind = "internal"
)

// AppError is an error carrying an HTTP-translatable kind.
// Message is safe to show to clients; Err holds the underlying detail and is
// only ever logged server-side.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation, KindIntegrity:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a 400-class validation error
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewIntegrityError creates a 400-class integrity error
func NewIntegrityError(message string) *AppError {
	return &AppError{Kind: KindIntegrity, Message: message}
}

// NewNotFoundError creates a 404 error
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// NewUpstreamError creates a 500-class integration error
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{Kind: KindUpstream, Message: message, Err: err}
}

// NewMisconfiguredError creates a 500-class misconfiguration error
func NewMisconfiguredError(message string) *AppError {
	return &AppError{Kind: KindMisconfigured, Message: message}
}

// NewInternalError creates a generic 500 error
func NewInternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}
