package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncompleteDataError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("predict: %w", &IncompleteDataError{MissingFields: []string{"cgpa", "iq"}})

	assert.True(t, errors.Is(err, ErrIncompleteData))
	assert.Contains(t, err.Error(), "cgpa, iq")

	var ide *IncompleteDataError
	assert.True(t, errors.As(err, &ide))
	assert.Equal(t, []string{"cgpa", "iq"}, ide.MissingFields)
}

func TestCustomError_UnwrapAndMessage(t *testing.T) {
	err := NewResourceNotFoundError("student 7 not found")

	assert.True(t, errors.Is(err, ErrResourceNotFound))
	assert.Equal(t, "student 7 not found", err.Error())

	bare := &CustomError{Err: ErrBadRequest}
	assert.Equal(t, "bad request", bare.Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}

func TestNewStudentNotFoundError(t *testing.T) {
	err := fmt.Errorf("get: %w", NewStudentNotFoundError(7))

	assert.True(t, errors.Is(err, ErrStudentNotFound))
	assert.False(t, errors.Is(err, ErrResourceNotFound))
	assert.Contains(t, err.Error(), "student 7 not found")

	var ce *CustomError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, "student 7 not found", ce.Message)
}

func TestNewBadRequestError(t *testing.T) {
	err := NewBadRequestError("Invalid student ID")
	assert.True(t, errors.Is(err, ErrBadRequest))
	assert.Equal(t, "Invalid student ID", err.Error())
}
