package service

import (
	"time"

	"bakehouse/internal/domain"
	"bakehouse/internal/errors"

	"go.uber.org/zap"
)

// TransitionService is the order lifecycle state machine shared by the
// admin update path and the customer-facing display. The machine is
// deliberately permissive: any known status is reachable from any
// non-terminal status, backwards jumps included. Only delivered and
// cancelled are closed.
type TransitionService struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewTransitionService(logger *zap.Logger) *TransitionService {
	return &TransitionService{
		logger: logger,
		now:    time.Now,
	}
}

func (s *TransitionService) ValidateTransition(current, next string) error {
	if !domain.IsKnownStatus(current) {
		return errors.NewTransitionError(current, next, "unknown current status")
	}
	if !domain.IsKnownStatus(next) {
		return errors.NewTransitionError(current, next, "unknown target status")
	}
	if domain.IsTerminalStatus(current) {
		return errors.NewTransitionError(current, next, "order is in a terminal status")
	}
	return nil
}

// ApplyTransition returns a copy of the order with the new status and a
// status-history entry appended at the current wall-clock time. The
// input order is never mutated; the caller persists the result.
func (s *TransitionService) ApplyTransition(order domain.Order, next string, notes *string) (domain.Order, error) {
	if err := s.ValidateTransition(order.Status, next); err != nil {
		s.logger.Warn("transition rejected",
			zap.Uint("orderId", order.ID),
			zap.String("current", order.Status),
			zap.String("next", next),
			zap.Error(err))
		return domain.Order{}, err
	}

	now := s.now().UTC()

	updated := order
	updated.Status = next
	updated.UpdatedAt = now
	updated.Items = append([]domain.LineItem(nil), order.Items...)
	updated.StatusHistory = append(append([]domain.StatusHistoryEntry(nil), order.StatusHistory...),
		domain.StatusHistoryEntry{
			OrderID:   order.ID,
			Status:    next,
			Notes:     notes,
			CreatedAt: now,
		})

	s.logger.Info("transition applied",
		zap.Uint("orderId", order.ID),
		zap.String("from", order.Status),
		zap.String("to", next))

	return updated, nil
}
