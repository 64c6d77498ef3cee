package domain

import "time"

// DateRange is a pair of inclusive calendar dates. Boundaries are
// interpreted in UTC everywhere in the engine: Start at 00:00:00 and
// End at 23:59:59.999999999.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: startOfDay(start), End: endOfDay(end)}
}

func (r DateRange) StartInstant() time.Time {
	return startOfDay(r.Start)
}

func (r DateRange) EndInstant() time.Time {
	return endOfDay(r.End)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC)
}
