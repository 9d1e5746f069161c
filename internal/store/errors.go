package store

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes helper errors.
type ErrorCode string

const (
	// CodeConnection indicates a connection could not be obtained or closed.
	CodeConnection ErrorCode = "CONNECTION"

	// CodeStatement indicates the SQL statement failed to execute.
	CodeStatement ErrorCode = "STATEMENT"

	// CodeMapping indicates a result row could not be coerced into the
	// target record type.
	CodeMapping ErrorCode = "MAPPING"

	// CodeValidation indicates a write was rejected before reaching the
	// database (e.g. an identifier failed validation).
	CodeValidation ErrorCode = "VALIDATION"
)

// Error is the error type returned by every helper operation.
// The underlying cause is always attached and reachable through errors.Is/As.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the helper operation that failed (e.g. "query entity list").
	Op string

	// SQL is the statement text, when one was involved.
	SQL string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.SQL != "" {
		return fmt.Sprintf("%s: %s failure (sql=%q): %v", e.Code, e.Op, e.SQL, e.Err)
	}
	return fmt.Sprintf("%s: %s failure: %v", e.Code, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsConnectionError reports whether err is a CONNECTION error.
func IsConnectionError(err error) bool { return hasCode(err, CodeConnection) }

// IsStatementError reports whether err is a STATEMENT error.
func IsStatementError(err error) bool { return hasCode(err, CodeStatement) }

// IsMappingError reports whether err is a MAPPING error.
func IsMappingError(err error) bool { return hasCode(err, CodeMapping) }

// IsValidationError reports whether err is a VALIDATION error.
func IsValidationError(err error) bool { return hasCode(err, CodeValidation) }
