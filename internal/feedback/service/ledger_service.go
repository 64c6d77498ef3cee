package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"bakehouse/internal/domain"
	"bakehouse/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type FeedbackRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Feedback, error)
	FindByOrderID(ctx context.Context, orderID uint) (*domain.Feedback, error)
	Insert(ctx context.Context, tx *sql.Tx, feedback domain.Feedback) error
	Update(ctx context.Context, tx *sql.Tx, feedback domain.Feedback) error
	Delete(ctx context.Context, tx *sql.Tx, id string) error
}

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	SetHasFeedback(ctx context.Context, tx *sql.Tx, id uint, hasFeedback bool) error
}

// LedgerService enforces the feedback invariants: feedback attaches to
// exactly one delivered order, at most one active record per order, and
// every create/delete flips the order's hasFeedback flag in the same
// transaction as the feedback write.
type LedgerService struct {
	db           TransactionManager
	feedbackRepo FeedbackRepository
	orderRepo    OrderRepository
	logger       *zap.Logger
	now          func() time.Time
	newID        func() string
}

func NewLedgerService(
	db TransactionManager,
	feedbackRepo FeedbackRepository,
	orderRepo OrderRepository,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		db:           db,
		feedbackRepo: feedbackRepo,
		orderRepo:    orderRepo,
		logger:       logger,
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
	}
}

func (s *LedgerService) Create(ctx context.Context, orderID uint, rating int, message string, imageRef *string) (*domain.Feedback, error) {
	if err := validateFields(rating, message); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != domain.OrderStatusDelivered {
		return nil, errors.NewFeedbackError(errors.FeedbackOrderNotDelivered,
			"feedback can only be left on delivered orders")
	}

	existing, err := s.feedbackRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); !ok {
			return nil, err
		}
	}
	if existing != nil {
		return nil, errors.NewFeedbackError(errors.FeedbackDuplicate,
			"feedback already exists for this order")
	}

	feedback := domain.Feedback{
		ID:        s.newID(),
		OrderID:   orderID,
		Rating:    rating,
		Message:   strings.TrimSpace(message),
		ImageRef:  imageRef,
		CreatedAt: s.now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := s.feedbackRepo.Insert(ctx, tx, feedback); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SetHasFeedback(ctx, tx, orderID, true); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("feedback created",
		zap.String("feedbackId", feedback.ID),
		zap.Uint("orderId", orderID),
		zap.Int("rating", rating))

	return &feedback, nil
}

func (s *LedgerService) Edit(ctx context.Context, feedbackID string, rating int, message string, imageRef *string) (*domain.Feedback, error) {
	if err := validateFields(rating, message); err != nil {
		return nil, err
	}

	existing, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, errors.NewFeedbackError(errors.FeedbackNotFound, "feedback not found")
		}
		return nil, err
	}

	// Edits replace fields in place; id and creation time survive, no
	// history is kept.
	updated := *existing
	updated.Rating = rating
	updated.Message = strings.TrimSpace(message)
	updated.ImageRef = imageRef

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	if err := s.feedbackRepo.Update(ctx, tx, updated); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.String("feedbackId", feedbackID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("feedback updated", zap.String("feedbackId", feedbackID))

	return &updated, nil
}

// Delete removes the record and flips the order's hasFeedback flag.
// Deleting twice yields NotFound on the second call; callers may treat
// that as a harmless no-op.
func (s *LedgerService) Delete(ctx context.Context, feedbackID string) error {
	existing, err := s.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return errors.NewFeedbackError(errors.FeedbackNotFound, "feedback not found")
		}
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.feedbackRepo.Delete(ctx, tx, feedbackID); err != nil {
		return err
	}
	if err := s.orderRepo.SetHasFeedback(ctx, tx, existing.OrderID, false); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.String("feedbackId", feedbackID), zap.Error(err))
		return err
	}

	s.logger.Info("feedback deleted",
		zap.String("feedbackId", feedbackID),
		zap.Uint("orderId", existing.OrderID))

	return nil
}

// View is a read-only lookup; absence is nil, not an error, and the
// order's hasFeedback flag is never touched.
func (s *LedgerService) View(ctx context.Context, orderID uint) (*domain.Feedback, error) {
	feedback, err := s.feedbackRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, nil
		}
		return nil, err
	}
	return feedback, nil
}

func validateFields(rating int, message string) error {
	if !domain.ValidRating(rating) {
		return errors.NewFeedbackError(errors.FeedbackInvalidRating, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(message) == "" {
		return errors.NewFeedbackError(errors.FeedbackEmptyMessage, "message must not be empty")
	}
	return nil
}
