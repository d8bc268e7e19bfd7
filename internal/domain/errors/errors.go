package errors

import (
	"errors"
	"fmt"
)

var (
	// Debit errors. Their messages are surfaced to callers as-is.
	ErrInsufficientBalance = errors.New("client does not have sufficient balance")
	ErrDebitFailed         = errors.New("it was not possible to debit checking account")
	ErrLedgerUnavailable   = errors.New("ledger unavailable")

	// Recurrent payment errors
	ErrInvalidTransactionID = errors.New("invalid transaction id")
	ErrPaymentNotRecorded   = errors.New("debit executed but recurrent payment was not recorded")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidInput     = errors.New("invalid input")
)

// DomainError wraps errors with additional context
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError represents a single violated rule on a request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
