package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Student errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrStudentEmailExists = errors.New("student email already exists")
)

// Prediction errors
var (
	ErrIncompleteData               = errors.New("incomplete data")
	ErrPredictionServiceUnavailable = errors.New("prediction service unavailable")
	// ErrPersistenceWarning is never returned as a request failure; it marks a
	// prediction that was computed but could not be recorded.
	ErrPersistenceWarning = errors.New("prediction computed but not recorded")
)

// IncompleteDataError lists the required fields that were null on a record.
type IncompleteDataError struct {
	MissingFields []string
}

// Error implements error interface
func (e *IncompleteDataError) Error() string {
	return "missing required fields: " + strings.Join(e.MissingFields, ", ")
}

// Unwrap lets errors.Is match ErrIncompleteData.
func (e *IncompleteDataError) Unwrap() error {
	return ErrIncompleteData
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return NewCustomError(ErrResourceNotFound, message)
}

// NewStudentNotFoundError names the missing student id
func NewStudentNotFoundError(id int64) error {
	return NewCustomError(ErrStudentNotFound, fmt.Sprintf("student %d not found", id))
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return NewCustomError(ErrBadRequest, message)
}

// CustomError represents application-specific errors with additional context
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
