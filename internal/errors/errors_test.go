package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "rating", Message: "rating must be between 1 and 5"},
		{Field: "message", Message: "required field"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestTransitionError_Creation(t *testing.T) {
	err := NewTransitionError("delivered", "pending", "terminal status cannot change")

	assert.Equal(t, "delivered", err.Current)
	assert.Equal(t, "pending", err.Next)
	assert.Equal(t, "terminal status cannot change (delivered -> pending)", err.Error())

	te, ok := IsTransitionError(err)
	assert.True(t, ok)
	assert.NotNil(t, te)
}

func TestFeedbackError_Codes(t *testing.T) {
	err := NewFeedbackError(FeedbackDuplicate, "feedback already exists for order 1")

	fe, ok := IsFeedbackError(err)
	assert.True(t, ok)
	assert.Equal(t, FeedbackDuplicate, fe.Code)
	assert.Equal(t, "feedback already exists for order 1", fe.Error())

	_, ok = IsFeedbackError(errors.New("plain"))
	assert.False(t, ok)
}

func TestIngestionError_Creation(t *testing.T) {
	err := NewIngestionError("orders", "unrecognized envelope shape")

	ie, ok := IsIngestionError(err)
	assert.True(t, ok)
	assert.Equal(t, "orders", ie.Collection)
	assert.Equal(t, "orders: unrecognized envelope shape", ie.Error())
}

func TestDateRangeError_Creation(t *testing.T) {
	err := NewDateRangeError("start date is after end date")

	de, ok := IsDateRangeError(err)
	assert.True(t, ok)
	assert.Equal(t, "start date is after end date", de.Error())
}

func TestUnauthorizedError_Creation(t *testing.T) {
	err := NewUnauthorizedError("invalid username or password")

	ue, ok := IsUnauthorizedError(err)
	assert.True(t, ok)
	assert.Equal(t, "invalid username or password", ue.Error())

	_, ok = IsUnauthorizedError(errors.New("plain"))
	assert.False(t, ok)
}

func TestInternalError_WrapsCause(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.Equal(t, "failed to query database: database error", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
}
