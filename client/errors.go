package client

import (
	"fmt"
	"strings"
)

// ConflictField says which unique field a 409 collided on. The backend
// reports conflicts as a plain error message, so the field is inferred
// from its text and may be unknown.
type ConflictField string

const (
	ConflictUsername ConflictField = "username"
	ConflictEmail    ConflictField = "email"
	ConflictUnknown  ConflictField = "unknown"
)

// ValidationError maps a 400: the server rejected the input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// AuthError maps a 401: missing, expired or wrong credentials.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

// ConflictError maps a 409 from registration: the username or email is
// already taken.
type ConflictError struct {
	Message string
	Field   ConflictField
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

// NotFoundError maps a 404: the resource does not exist or does not
// belong to the caller.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.Message)
}

// ServerError maps any 5xx.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// NetworkError wraps a transport failure: the request never reached
// the server.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// errorFromStatus turns a non-2xx response into the matching typed
// error.
func errorFromStatus(status int, message string) error {
	switch {
	case status == 400:
		return &ValidationError{Message: message}
	case status == 401:
		return &AuthError{Message: message}
	case status == 404:
		return &NotFoundError{Message: message}
	case status == 409:
		return &ConflictError{Message: message, Field: conflictFieldFrom(message)}
	case status >= 500:
		return &ServerError{StatusCode: status, Message: message}
	default:
		return &ServerError{StatusCode: status, Message: message}
	}
}

func conflictFieldFrom(message string) ConflictField {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "username"):
		return ConflictUsername
	case strings.Contains(lower, "email"):
		return ConflictEmail
	default:
		return ConflictUnknown
	}
}
