package usecase

import (
	"context"
	"database/sql"

	"bakehouse/internal/domain"

	"go.uber.org/zap"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

type OrderRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id uint, status string) error
	InsertStatusHistory(ctx context.Context, tx *sql.Tx, entry domain.StatusHistoryEntry) (uint, error)
}

type TransitionEngine interface {
	ApplyTransition(order domain.Order, next string, notes *string) (domain.Order, error)
}

// UpdateStatusUseCase moves an order through its lifecycle: the engine
// produces the transitioned value, this use case persists status and the
// new history entry atomically.
type UpdateStatusUseCase struct {
	db        TransactionManager
	orderRepo OrderRepository
	engine    TransitionEngine
	logger    *zap.Logger
}

func NewUpdateStatusUseCase(
	db TransactionManager,
	orderRepo OrderRepository,
	engine TransitionEngine,
	logger *zap.Logger,
) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		db:        db,
		orderRepo: orderRepo,
		engine:    engine,
		logger:    logger,
	}
}

func (uc *UpdateStatusUseCase) UpdateStatus(ctx context.Context, orderID uint, next string, notes *string) (*domain.Order, error) {
	order, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	updated, err := uc.engine.ApplyTransition(*order, next, notes)
	if err != nil {
		return nil, err
	}

	tx, err := uc.db.BeginTx(ctx, nil)
	if err != nil {
		uc.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	// Rollback is ignored by MySQL once the tx is committed.
	defer tx.Rollback()

	if err := uc.orderRepo.UpdateStatus(ctx, tx, orderID, updated.Status); err != nil {
		return nil, err
	}

	entry := updated.StatusHistory[len(updated.StatusHistory)-1]
	entryID, err := uc.orderRepo.InsertStatusHistory(ctx, tx, entry)
	if err != nil {
		return nil, err
	}
	updated.StatusHistory[len(updated.StatusHistory)-1].ID = entryID

	if err := tx.Commit(); err != nil {
		uc.logger.Error("failed to commit transaction", zap.Uint("orderId", orderID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("order status updated",
		zap.Uint("orderId", orderID),
		zap.String("status", updated.Status))

	return &updated, nil
}

func (uc *UpdateStatusUseCase) GetOrder(ctx context.Context, orderID uint) (*domain.Order, error) {
	return uc.orderRepo.FindByID(ctx, orderID)
}
