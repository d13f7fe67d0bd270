package platform

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes registry errors.
type ErrorCode string

const (
	// ErrCodeName indicates an invalid or duplicate registration name.
	ErrCodeName ErrorCode = "NAME_ERROR"

	// ErrCodeRegistration indicates a malformed registration, such as an
	// instruction type that is not fully generalized or a template operand
	// that is not a constant.
	ErrCodeRegistration ErrorCode = "INVALID_REGISTRATION"

	// ErrCodeConfig indicates a platform description that failed schema
	// validation or decoding.
	ErrCodeConfig ErrorCode = "INVALID_PLATFORM"
)

// Error represents a registry or platform-description failure. There is no
// retry or partial recovery: a failed registration leaves the registry as it
// was and reports to the immediate caller.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Name is the registration name involved, if any.
	Name string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (name=%s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNameError returns true for invalid/duplicate registration names.
// Uses errors.As to handle wrapped errors.
func IsNameError(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Code == ErrCodeName
}

// IsConfigError returns true for platform-description failures.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Code == ErrCodeConfig
}

func newNameError(name, message string) *Error {
	return &Error{Code: ErrCodeName, Message: message, Name: name}
}

func newRegistrationError(name, message string) *Error {
	return &Error{Code: ErrCodeRegistration, Message: message, Name: name}
}

func newConfigError(message string) *Error {
	return &Error{Code: ErrCodeConfig, Message: message}
}
