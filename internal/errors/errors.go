package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func IsConflictError(err error) (*ConflictError, bool) {
	if ce, ok := err.(*ConflictError); ok {
		return ce, true
	}
	return nil, false
}

// TransitionError rejects an order status transition. It is recoverable:
// the caller re-prompts, it is never escalated to a fatal error.
type TransitionError struct {
	Current string
	Next    string
	Message string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s (%s -> %s)", e.Message, e.Current, e.Next)
}

func NewTransitionError(current, next, message string) *TransitionError {
	return &TransitionError{Current: current, Next: next, Message: message}
}

func IsTransitionError(err error) (*TransitionError, bool) {
	if te, ok := err.(*TransitionError); ok {
		return te, true
	}
	return nil, false
}

// FeedbackError codes. Each maps to a distinct user-facing message and
// must not be collapsed into a generic failure.
const (
	FeedbackOrderNotDelivered = "ORDER_NOT_DELIVERED"
	FeedbackDuplicate         = "DUPLICATE_FEEDBACK"
	FeedbackInvalidRating     = "INVALID_RATING"
	FeedbackEmptyMessage      = "EMPTY_MESSAGE"
	FeedbackNotFound          = "NOT_FOUND"
)

type FeedbackError struct {
	Code    string
	Message string
}

func (e *FeedbackError) Error() string {
	return e.Message
}

func NewFeedbackError(code, message string) *FeedbackError {
	return &FeedbackError{Code: code, Message: message}
}

func IsFeedbackError(err error) (*FeedbackError, bool) {
	if fe, ok := err.(*FeedbackError); ok {
		return fe, true
	}
	return nil, false
}

// IngestionError reports an external collection whose envelope shape is
// not one of the recognized forms. It is distinct from reducer errors:
// reducers never run on un-normalized input.
type IngestionError struct {
	Collection string
	Message    string
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Collection, e.Message)
}

func NewIngestionError(collection, message string) *IngestionError {
	return &IngestionError{Collection: collection, Message: message}
}

func IsIngestionError(err error) (*IngestionError, bool) {
	if ie, ok := err.(*IngestionError); ok {
		return ie, true
	}
	return nil, false
}

type DateRangeError struct {
	Message string
}

func (e *DateRangeError) Error() string {
	return e.Message
}

func NewDateRangeError(message string) *DateRangeError {
	return &DateRangeError{Message: message}
}

func IsDateRangeError(err error) (*DateRangeError, bool) {
	if de, ok := err.(*DateRangeError); ok {
		return de, true
	}
	return nil, false
}

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}

func NewUnauthorizedError(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

func IsUnauthorizedError(err error) (*UnauthorizedError, bool) {
	if ue, ok := err.(*UnauthorizedError); ok {
		return ue, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}
