package domain

import (
	"errors"
	"fmt"
)

// Code classifies a DomainError so the transport layer can map it to a status.
type Code string

const (
	CodeValidation   Code = "VALIDATION"
	CodeRange        Code = "RANGE"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodePolicy       Code = "POLICY"
	CodeUnauthorized Code = "UNAUTHORIZED"
)

// DomainError is the error type returned by the core. The message is safe to
// surface to callers; Err, when set, carries the underlying cause.
type DomainError struct {
	Code    Code
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewValidationError reports malformed or missing input.
func NewValidationError(format string, args ...any) *DomainError {
	return &DomainError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewRangeError reports an invalid date range (check-in not before check-out).
func NewRangeError(message string) *DomainError {
	return &DomainError{Code: CodeRange, Message: message}
}

// NewNotFoundError reports a missing referenced resource.
func NewNotFoundError(resource, id string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// NewConflictError reports an overlap, duplicate, or stale-write conflict.
func NewConflictError(message string) *DomainError {
	return &DomainError{Code: CodeConflict, Message: message}
}

// NewPolicyError reports an operation rejected by a time-based edit policy.
func NewPolicyError(message string) *DomainError {
	return &DomainError{Code: CodePolicy, Message: message}
}

// NewAuthorizationError reports a failed role check. The message is generic
// on purpose; no detail about the required roles is leaked.
func NewAuthorizationError() *DomainError {
	return &DomainError{Code: CodeUnauthorized, Message: "not authorized"}
}

// Wrap attaches an underlying cause to a new DomainError.
func Wrap(code Code, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

// CodeOf extracts the classification from an error chain.
func CodeOf(err error) (Code, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}

// IsNotFound reports whether err is a NOT_FOUND domain error.
func IsNotFound(err error) bool {
	c, ok := CodeOf(err)
	return ok && c == CodeNotFound
}

// IsConflict reports whether err is a CONFLICT domain error.
func IsConflict(err error) bool {
	c, ok := CodeOf(err)
	return ok && c == CodeConflict
}
