package httpclient

import (
	"errors"
	"fmt"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode string

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeConnection indicates a connection failure (refused, DNS, etc).
	ErrCodeConnection ErrorCode = "connection"
	// ErrCodeAuth indicates an authentication/authorization failure (401/403).
	ErrCodeAuth ErrorCode = "auth"
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeRateLimit indicates rate limiting (429).
	ErrCodeRateLimit ErrorCode = "rate_limit"
	// ErrCodeValidation indicates a client-side validation error (4xx).
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeServer indicates a server-side error (5xx).
	ErrCodeServer ErrorCode = "server"
)

// Error is a structured HTTP client error with classification.
type Error struct {
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Retryable indicates whether the operation can be retried.
	Retryable bool
	// Body is the original response body (may be nil).
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

// NewValidationError creates a client-side validation error.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	code := ErrCodeServer
	retryable := statusCode >= 500
	switch {
	case statusCode == 401 || statusCode == 403:
		code = ErrCodeAuth
	case statusCode == 404:
		code = ErrCodeNotFound
	case statusCode == 429:
		code = ErrCodeRateLimit
		retryable = true
	case statusCode >= 400 && statusCode < 500:
		code = ErrCodeValidation
	}

	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Retryable:  retryable,
		Body:       body,
	}
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTimeout
}

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConnection
}

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAuth
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
