package shared

import (
	"errors"
	"strings"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	// ErrLedgerInconsistent signals that recorded history no longer supports the
	// requested reversal. It is fatal for the enclosing unit of work.
	ErrLedgerInconsistent = NewDomainError("LEDGER_INCONSISTENT", "Ledger state is inconsistent with recorded history")

	// ErrShiftAlreadyClosed signals a duplicate close attempt for a (shift, date) pair.
	ErrShiftAlreadyClosed = NewDomainError("SHIFT_ALREADY_CLOSED", "Shift is already closed for this date")
)

// IsUniqueViolation reports whether an error is a storage-level unique
// constraint violation. The persistence layer translates driver errors into
// ErrAlreadyExists; the string fallbacks cover postgres (23505) and sqlite
// when translation is not in effect.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAlreadyExists) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicated key") ||
		strings.Contains(msg, "UNIQUE constraint")
}
