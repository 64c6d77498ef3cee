package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRating(t *testing.T) {
	for rating := FeedbackMinRating; rating <= FeedbackMaxRating; rating++ {
		assert.True(t, ValidRating(rating), "rating %d", rating)
	}

	assert.False(t, ValidRating(0))
	assert.False(t, ValidRating(6))
	assert.False(t, ValidRating(-1))
}
