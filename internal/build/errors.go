package build

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes construction errors.
type ErrorCode string

const (
	// ErrCodeTypeMismatch indicates an operand that does not fit the
	// reserved instruction form or signature it was supplied to.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeUnresolvedInstruction indicates no instruction signature
	// matches the requested name and operand types.
	ErrCodeUnresolvedInstruction ErrorCode = "UNRESOLVED_INSTRUCTION"

	// ErrCodeUnresolvedFunction indicates no function signature matches
	// the requested name and operand types.
	ErrCodeUnresolvedFunction ErrorCode = "UNRESOLVED_FUNCTION"

	// ErrCodeInvalidCondition indicates a condition supplied to an
	// instruction that is always unconditional (wait/barrier).
	ErrCodeInvalidCondition ErrorCode = "INVALID_CONDITION"

	// ErrCodeIndex indicates a reference index path outside the declared
	// shape of the object.
	ErrCodeIndex ErrorCode = "INDEX_ERROR"

	// ErrCodeRange indicates a literal value outside the representable
	// range of its type.
	ErrCodeRange ErrorCode = "RANGE_ERROR"
)

// Error represents a node-construction failure. Construction aborts on the
// first failure and reports to the immediate caller; the sole soft-failure
// path is MakeInstruction's returnEmptyOnFailure flag.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Name is the instruction or function name involved, if any.
	Name string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (name=%s)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsTypeMismatchError returns true for operand-shape failures.
// Uses errors.As to handle wrapped errors.
func IsTypeMismatchError(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Code == ErrCodeTypeMismatch
}

// IsUnresolvedInstructionError returns true when no instruction signature
// matched. Uses errors.As to handle wrapped errors.
func IsUnresolvedInstructionError(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Code == ErrCodeUnresolvedInstruction
}

// IsUnresolvedFunctionError returns true when no function signature matched.
// Uses errors.As to handle wrapped errors.
func IsUnresolvedFunctionError(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Code == ErrCodeUnresolvedFunction
}

// IsInvalidConditionError returns true for conditions on wait/barrier.
// Uses errors.As to handle wrapped errors.
func IsInvalidConditionError(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Code == ErrCodeInvalidCondition
}

// IsIndexError returns true for out-of-shape reference index paths.
// Uses errors.As to handle wrapped errors.
func IsIndexError(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Code == ErrCodeIndex
}

func newTypeMismatchError(name, message string) *Error {
	return &Error{Code: ErrCodeTypeMismatch, Message: message, Name: name}
}

func newInvalidConditionError(name string) *Error {
	return &Error{Code: ErrCodeInvalidCondition, Message: "instruction is always unconditional", Name: name}
}

func newIndexError(message string) *Error {
	return &Error{Code: ErrCodeIndex, Message: message}
}
