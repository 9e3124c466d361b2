package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Entity errors
var (
	ErrAuthorNotFound   = fmt.Errorf("%w: author", ErrResourceNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrResourceNotFound)
	ErrBookNotFound     = fmt.Errorf("%w: book", ErrResourceNotFound)
	ErrCourseNotFound   = fmt.Errorf("%w: course", ErrResourceNotFound)
	ErrStudentNotFound  = fmt.Errorf("%w: student", ErrResourceNotFound)
	ErrLoanNotFound     = fmt.Errorf("%w: issued book", ErrResourceNotFound)
	ErrFineNotFound     = fmt.Errorf("%w: fine", ErrResourceNotFound)

	ErrAuthorAlreadyExists   = fmt.Errorf("%w: author with this email", ErrResourceAlreadyExists)
	ErrCategoryAlreadyExists = fmt.Errorf("%w: category with this name", ErrResourceAlreadyExists)

	ErrUsernameAlreadyExists   = fmt.Errorf("%w: username", ErrResourceAlreadyExists)
	ErrEmailAlreadyExists      = fmt.Errorf("%w: email", ErrResourceAlreadyExists)
	ErrEnrollmentAlreadyExists = fmt.Errorf("%w: enrollment number", ErrResourceAlreadyExists)
	ErrPhoneAlreadyExists      = fmt.Errorf("%w: phone number", ErrResourceAlreadyExists)
)

// Lending errors
var (
	// ErrBookUnavailable means the book has no copies left on the shelf.
	ErrBookUnavailable = errors.New("no copies available")
	// ErrLoanAlreadyActive means the student already holds an unreturned loan of this book.
	ErrLoanAlreadyActive = fmt.Errorf("%w: book already issued and not returned", ErrConflict)
	// ErrLoanAlreadyReturned means the loan was returned before.
	ErrLoanAlreadyReturned = fmt.Errorf("%w: issued book already returned", ErrConflict)
)

// CustomError pairs a sentinel base error with a specific message.
// errors.Is matches against the base via Unwrap.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

