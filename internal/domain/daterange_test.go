package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewDateRange_ExpandsToDayBoundaries(t *testing.T) {
	start := time.Date(2024, 1, 1, 14, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 9, 15, 0, 0, time.UTC)

	r := NewDateRange(start, end)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.StartInstant())
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), r.EndInstant())
}

func TestNewDateRange_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	start := time.Date(2024, 1, 2, 1, 0, 0, 0, loc) // 2024-01-01 20:00 UTC

	r := NewDateRange(start, start)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), r.StartInstant())
	assert.Equal(t, time.Date(2024, 1, 1, 23, 59, 59, 999999999, time.UTC), r.EndInstant())
}

func TestDateRange_SingleDay(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	r := NewDateRange(day, day)

	assert.True(t, r.StartInstant().Before(r.EndInstant()))
	assert.Equal(t, r.StartInstant().Truncate(24*time.Hour), r.EndInstant().Truncate(24*time.Hour))
}
