// Package domain defines core types, interfaces, and errors for the lending registry.
package domain

import "fmt"

// NotFoundError indicates an item or principal was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ConflictError indicates a duplicate identifier.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UnavailableError indicates an item is already on loan.
type UnavailableError struct {
	Message string
}

func (e *UnavailableError) Error() string { return e.Message }

// AuthError indicates failed authentication.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// NoOpenLoanError indicates there is no open loan to close for an item.
type NoOpenLoanError struct {
	Message string
}

func (e *NoOpenLoanError) Error() string { return e.Message }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrUnavailable creates an UnavailableError with a formatted message.
func ErrUnavailable(format string, args ...interface{}) *UnavailableError {
	return &UnavailableError{Message: fmt.Sprintf(format, args...)}
}

// ErrAuth creates an AuthError with a formatted message.
func ErrAuth(format string, args ...interface{}) *AuthError {
	return &AuthError{Message: fmt.Sprintf(format, args...)}
}

// ErrNoOpenLoan creates a NoOpenLoanError with a formatted message.
func ErrNoOpenLoan(format string, args ...interface{}) *NoOpenLoanError {
	return &NoOpenLoanError{Message: fmt.Sprintf(format, args...)}
}
