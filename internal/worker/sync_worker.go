package worker

import (
	"context"
	"time"

	"bakehouse/internal/domain"

	"go.uber.org/zap"
)

type Fetcher interface {
	FetchOrders(ctx context.Context) ([]domain.Order, error)
	FetchFeedback(ctx context.Context) ([]domain.Feedback, error)
	FetchInventory(ctx context.Context) ([]domain.InventoryItem, error)
}

type OrderWriter interface {
	Upsert(ctx context.Context, order domain.Order) error
}

type FeedbackWriter interface {
	Upsert(ctx context.Context, feedback domain.Feedback) error
}

type InventoryWriter interface {
	Upsert(ctx context.Context, item domain.InventoryItem) error
}

// SyncWorker periodically mirrors the legacy bakery API into the local
// database. A failed record is logged and skipped, never aborting the
// rest of the batch.
type SyncWorker struct {
	fetcher   Fetcher
	orders    OrderWriter
	feedback  FeedbackWriter
	inventory InventoryWriter
	interval  time.Duration
	logger    *zap.Logger
}

func NewSyncWorker(
	fetcher Fetcher,
	orders OrderWriter,
	feedback FeedbackWriter,
	inventory InventoryWriter,
	interval time.Duration,
	logger *zap.Logger,
) *SyncWorker {
	return &SyncWorker{
		fetcher:   fetcher,
		orders:    orders,
		feedback:  feedback,
		inventory: inventory,
		interval:  interval,
		logger:    logger,
	}
}

func (w *SyncWorker) Start(ctx context.Context) {
	w.logger.Info("starting sync worker", zap.Duration("interval", w.interval))

	// First pass immediately so a fresh deployment is not empty until
	// the first tick, unless the caller already cancelled.
	if ctx.Err() != nil {
		w.logger.Info("sync worker stopped")
		return
	}
	w.SyncOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sync worker stopped")
			return
		case <-ticker.C:
			w.SyncOnce(ctx)
		}
	}
}

// SyncOnce runs a single full pull. Each collection syncs independently
// so one bad upstream endpoint does not starve the others.
func (w *SyncWorker) SyncOnce(ctx context.Context) {
	w.syncOrders(ctx)
	w.syncFeedback(ctx)
	w.syncInventory(ctx)
}

func (w *SyncWorker) syncOrders(ctx context.Context) {
	orders, err := w.fetcher.FetchOrders(ctx)
	if err != nil {
		w.logger.Error("fetching orders failed", zap.Error(err))
		return
	}

	synced := 0
	for _, order := range orders {
		if err := w.orders.Upsert(ctx, order); err != nil {
			w.logger.Error("upserting order failed", zap.Uint("orderId", order.ID), zap.Error(err))
			continue
		}
		synced++
	}
	w.logger.Info("orders synced", zap.Int("count", synced), zap.Int("fetched", len(orders)))
}

func (w *SyncWorker) syncFeedback(ctx context.Context) {
	feedback, err := w.fetcher.FetchFeedback(ctx)
	if err != nil {
		w.logger.Error("fetching feedback failed", zap.Error(err))
		return
	}

	synced := 0
	for _, f := range feedback {
		if err := w.feedback.Upsert(ctx, f); err != nil {
			w.logger.Error("upserting feedback failed", zap.String("feedbackId", f.ID), zap.Error(err))
			continue
		}
		synced++
	}
	w.logger.Info("feedback synced", zap.Int("count", synced), zap.Int("fetched", len(feedback)))
}

func (w *SyncWorker) syncInventory(ctx context.Context) {
	items, err := w.fetcher.FetchInventory(ctx)
	if err != nil {
		w.logger.Error("fetching inventory failed", zap.Error(err))
		return
	}

	synced := 0
	for _, item := range items {
		if err := w.inventory.Upsert(ctx, item); err != nil {
			w.logger.Error("upserting ingredient failed", zap.Uint("itemId", item.ID), zap.Error(err))
			continue
		}
		synced++
	}
	w.logger.Info("inventory synced", zap.Int("count", synced), zap.Int("fetched", len(items)))
}
