package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bakehouse/internal/domain"
	"bakehouse/internal/errors"
)

func newTestService(now time.Time) *TransitionService {
	svc := NewTransitionService(zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestValidateTransition_ForwardAndBackwardJumpsAllowed(t *testing.T) {
	svc := newTestService(time.Now())

	cases := [][2]string{
		{domain.OrderStatusPending, domain.OrderStatusConfirmed},
		{domain.OrderStatusPending, domain.OrderStatusDelivered}, // skip ahead
		{domain.OrderStatusReady, domain.OrderStatusPreparing},   // backwards
		{domain.OrderStatusOutForDelivery, domain.OrderStatusCancelled},
		{domain.OrderStatusConfirmed, domain.OrderStatusConfirmed}, // no-op re-apply
	}

	for _, c := range cases {
		assert.NoError(t, svc.ValidateTransition(c[0], c[1]), "%s -> %s", c[0], c[1])
	}
}

func TestValidateTransition_TerminalStatesAreClosed(t *testing.T) {
	svc := newTestService(time.Now())

	for _, terminal := range []string{domain.OrderStatusDelivered, domain.OrderStatusCancelled} {
		for _, next := range domain.OrderStatuses {
			err := svc.ValidateTransition(terminal, next)
			require.Error(t, err, "%s -> %s must be rejected", terminal, next)

			te, ok := errors.IsTransitionError(err)
			require.True(t, ok)
			assert.Equal(t, terminal, te.Current)
		}
	}
}

func TestValidateTransition_UnknownTokensRejected(t *testing.T) {
	svc := newTestService(time.Now())

	err := svc.ValidateTransition("shipped", domain.OrderStatusDelivered)
	_, ok := errors.IsTransitionError(err)
	assert.True(t, ok)

	err = svc.ValidateTransition(domain.OrderStatusPending, "shipped")
	_, ok = errors.IsTransitionError(err)
	assert.True(t, ok)
}

func TestApplyTransition_AppendsHistoryAndKeepsInputIntact(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestService(now)

	notes := "left at front desk"
	original := domain.Order{
		ID:     42,
		Status: domain.OrderStatusOutForDelivery,
		StatusHistory: []domain.StatusHistoryEntry{
			{OrderID: 42, Status: domain.OrderStatusPending},
			{OrderID: 42, Status: domain.OrderStatusOutForDelivery},
		},
	}

	updated, err := svc.ApplyTransition(original, domain.OrderStatusDelivered, &notes)
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusDelivered, updated.Status)
	require.Len(t, updated.StatusHistory, 3)
	last := updated.StatusHistory[2]
	assert.Equal(t, domain.OrderStatusDelivered, last.Status)
	assert.Equal(t, now, last.CreatedAt)
	require.NotNil(t, last.Notes)
	assert.Equal(t, notes, *last.Notes)

	// Input untouched.
	assert.Equal(t, domain.OrderStatusOutForDelivery, original.Status)
	assert.Len(t, original.StatusHistory, 2)
}

func TestApplyTransition_TerminalOrderRejected(t *testing.T) {
	svc := newTestService(time.Now())

	order := domain.Order{ID: 7, Status: domain.OrderStatusCancelled}
	_, err := svc.ApplyTransition(order, domain.OrderStatusPending, nil)

	te, ok := errors.IsTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusCancelled, te.Current)
}
