package types

import (
	"errors"
	"fmt"
)

// ErrorKind represents different categories of errors
type ErrorKind string

const (
	ErrorKindValidation     ErrorKind = "validation"
	ErrorKindNotFound       ErrorKind = "not_found"
	ErrorKindConflict       ErrorKind = "conflict"
	ErrorKindDecode         ErrorKind = "decode"
	ErrorKindStorage        ErrorKind = "storage"
	ErrorKindAuthentication ErrorKind = "authentication"
)

// ClinicError represents a structured error in the clinic system
type ClinicError struct {
	Kind    ErrorKind              `json:"kind"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *ClinicError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *ClinicError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(code, message string) *ClinicError {
	return &ClinicError{
		Kind:    ErrorKindValidation,
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(code, message string) *ClinicError {
	return &ClinicError{
		Kind:    ErrorKindNotFound,
		Code:    code,
		Message: message,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(code, message string) *ClinicError {
	return &ClinicError{
		Kind:    ErrorKindConflict,
		Code:    code,
		Message: message,
	}
}

// NewDecodeError creates a new decode error for unreadable stored data.
// Callers can distinguish "empty because nothing exists" from "empty because
// the stored bytes were unreadable" by checking for this kind.
func NewDecodeError(key string, cause error) *ClinicError {
	return &ClinicError{
		Kind:    ErrorKindDecode,
		Code:    ErrCodeDecodeFailed,
		Message: fmt.Sprintf("stored value under %q could not be decoded", key),
		Details: map[string]interface{}{"key": key},
		Cause:   cause,
	}
}

// NewStorageError creates a new storage error
func NewStorageError(code, message string, cause error) *ClinicError {
	return &ClinicError{
		Kind:    ErrorKindStorage,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(code, message string) *ClinicError {
	return &ClinicError{
		Kind:    ErrorKindAuthentication,
		Code:    code,
		Message: message,
	}
}

// KindOf returns the ErrorKind of err, or an empty kind for foreign errors.
func KindOf(err error) ErrorKind {
	var ce *ClinicError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool {
	return KindOf(err) == ErrorKindNotFound
}

// IsDecode reports whether err is a decode error
func IsDecode(err error) bool {
	return KindOf(err) == ErrorKindDecode
}

// IsConflict reports whether err is a conflict error
func IsConflict(err error) bool {
	return KindOf(err) == ErrorKindConflict
}

// Common error codes
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeDecodeFailed  = "DECODE_FAILED"
	ErrCodeStorageFailed = "STORAGE_FAILED"
	ErrCodeAuthFailed    = "AUTHENTICATION_FAILED"
	ErrCodeSlotTaken     = "SLOT_TAKEN"
)
