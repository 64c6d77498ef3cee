package analytics

import (
	"time"

	"bakehouse/internal/domain"
	"bakehouse/internal/errors"
)

// ValidateRange checks the range invariants before any filtering runs.
// Filtering never executes on an invalid range. The end date may be
// today but not later; comparisons are calendar-date comparisons in UTC.
func ValidateRange(r domain.DateRange, now time.Time) error {
	if r.StartInstant().After(r.EndInstant()) {
		return errors.NewDateRangeError("start date cannot be after end date")
	}
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	if r.EndInstant().After(today.Add(24*time.Hour - time.Nanosecond)) {
		return errors.NewDateRangeError("end date cannot be in the future")
	}
	return nil
}

// InRange reports whether ts falls within the inclusive range
// [start 00:00:00, end 23:59:59.999999999] UTC. Zero timestamps
// (missing or unparseable upstream) are excluded, never an error.
//
// This is the only date-filtering predicate in the system; dashboard,
// reports, and analytics all go through it.
func InRange(ts time.Time, r domain.DateRange) bool {
	if ts.IsZero() {
		return false
	}
	ts = ts.UTC()
	return !ts.Before(r.StartInstant()) && !ts.After(r.EndInstant())
}

// FilterOrders keeps orders whose CreatedAt falls inside the range,
// preserving input order.
func FilterOrders(orders []domain.Order, r domain.DateRange) []domain.Order {
	filtered := []domain.Order{}
	for _, o := range orders {
		if InRange(o.CreatedAt, r) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// FilterFeedback keeps feedback whose CreatedAt falls inside the range,
// preserving input order.
func FilterFeedback(feedback []domain.Feedback, r domain.DateRange) []domain.Feedback {
	filtered := []domain.Feedback{}
	for _, f := range feedback {
		if InRange(f.CreatedAt, r) {
			filtered = append(filtered, f)
		}
	}
	return filtered
}
