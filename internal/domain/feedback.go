package domain

import "time"

const (
	FeedbackMinRating = 1
	FeedbackMaxRating = 5
)

// Feedback is a customer's review of one delivered order. At most one
// active feedback exists per order; edits replace fields in place and
// keep no history.
type Feedback struct {
	ID        string
	OrderID   uint
	Rating    int
	Message   string
	ImageRef  *string
	CreatedAt time.Time
}

func ValidRating(rating int) bool {
	return rating >= FeedbackMinRating && rating <= FeedbackMaxRating
}
