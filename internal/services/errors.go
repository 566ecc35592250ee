package services

import "fmt"

// ErrorKind classifies service failures so handlers can pick a status code.
type ErrorKind int

const (
	KindInvalid ErrorKind = iota + 1
	KindNotFound
	KindUnauthorized
	KindInternal
)

// AppError carries the failure taxonomy from the service layer to the
// handlers: client validation errors, missing records, and infrastructure
// faults are distinguished by Kind.
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

// Invalid builds a client validation error.
func Invalid(format string, args ...any) *AppError {
	return &AppError{Kind: KindInvalid, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a missing-record error.
func NotFound(format string, args ...any) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized builds an authentication failure.
func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

// Internal wraps an infrastructure failure.
func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}
