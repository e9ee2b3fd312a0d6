package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrMappingNotFound indicates that no transaction-type mapping is configured
// for the transaction type being posted. This is a setup error, not a
// transient one, and must never be swallowed.
var ErrMappingNotFound = errors.New("transaction type mapping not found")

// ErrAccountNotConfigured indicates that a mapping resolved to an account code
// that does not exist in the entity's chart of accounts.
var ErrAccountNotConfigured = errors.New("account not configured for entity")

// ErrUnbalancedEntry indicates a manual journal entry whose debit and credit
// totals differ by more than the allowed rounding epsilon.
var ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")

// ErrImmutableEntry indicates an attempt to modify or delete a posted journal entry.
var ErrImmutableEntry = errors.New("posted journal entry is immutable")

// ErrConsistency indicates the ledger itself is inconsistent (trial balance
// totals diverged). This signals a posting-engine bug, not bad user input.
var ErrConsistency = errors.New("ledger consistency violation")

// AppError wraps a lower-level failure with a status code and message.
type AppError struct {
	Code    int
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

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound via errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
