package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"bakehouse/internal/domain"
)

type mockFetcher struct {
	FetchOrdersFunc    func(ctx context.Context) ([]domain.Order, error)
	FetchFeedbackFunc  func(ctx context.Context) ([]domain.Feedback, error)
	FetchInventoryFunc func(ctx context.Context) ([]domain.InventoryItem, error)
}

func (m *mockFetcher) FetchOrders(ctx context.Context) ([]domain.Order, error) {
	return m.FetchOrdersFunc(ctx)
}

func (m *mockFetcher) FetchFeedback(ctx context.Context) ([]domain.Feedback, error) {
	return m.FetchFeedbackFunc(ctx)
}

func (m *mockFetcher) FetchInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	return m.FetchInventoryFunc(ctx)
}

type mockOrderWriter struct {
	UpsertFunc func(ctx context.Context, order domain.Order) error
}

func (m *mockOrderWriter) Upsert(ctx context.Context, order domain.Order) error {
	return m.UpsertFunc(ctx, order)
}

type mockFeedbackWriter struct {
	UpsertFunc func(ctx context.Context, feedback domain.Feedback) error
}

func (m *mockFeedbackWriter) Upsert(ctx context.Context, feedback domain.Feedback) error {
	return m.UpsertFunc(ctx, feedback)
}

type mockInventoryWriter struct {
	UpsertFunc func(ctx context.Context, item domain.InventoryItem) error
}

func (m *mockInventoryWriter) Upsert(ctx context.Context, item domain.InventoryItem) error {
	return m.UpsertFunc(ctx, item)
}

func emptyFetcher() *mockFetcher {
	return &mockFetcher{
		FetchOrdersFunc:    func(ctx context.Context) ([]domain.Order, error) { return nil, nil },
		FetchFeedbackFunc:  func(ctx context.Context) ([]domain.Feedback, error) { return nil, nil },
		FetchInventoryFunc: func(ctx context.Context) ([]domain.InventoryItem, error) { return nil, nil },
	}
}

func TestSyncOnce_UpsertsEveryFetchedRecord(t *testing.T) {
	fetcher := emptyFetcher()
	fetcher.FetchOrdersFunc = func(ctx context.Context) ([]domain.Order, error) {
		return []domain.Order{{ID: 1}, {ID: 2}}, nil
	}
	fetcher.FetchFeedbackFunc = func(ctx context.Context) ([]domain.Feedback, error) {
		return []domain.Feedback{{ID: "fb-1"}}, nil
	}
	fetcher.FetchInventoryFunc = func(ctx context.Context) ([]domain.InventoryItem, error) {
		return []domain.InventoryItem{{ID: 10}}, nil
	}

	var orderIDs []uint
	var feedbackIDs []string
	var itemIDs []uint

	w := NewSyncWorker(fetcher,
		&mockOrderWriter{UpsertFunc: func(ctx context.Context, o domain.Order) error {
			orderIDs = append(orderIDs, o.ID)
			return nil
		}},
		&mockFeedbackWriter{UpsertFunc: func(ctx context.Context, f domain.Feedback) error {
			feedbackIDs = append(feedbackIDs, f.ID)
			return nil
		}},
		&mockInventoryWriter{UpsertFunc: func(ctx context.Context, i domain.InventoryItem) error {
			itemIDs = append(itemIDs, i.ID)
			return nil
		}},
		time.Minute, zap.NewNop())

	w.SyncOnce(context.Background())

	assert.Equal(t, []uint{1, 2}, orderIDs)
	assert.Equal(t, []string{"fb-1"}, feedbackIDs)
	assert.Equal(t, []uint{10}, itemIDs)
}

func TestSyncOnce_FailedRecordDoesNotAbortBatch(t *testing.T) {
	fetcher := emptyFetcher()
	fetcher.FetchOrdersFunc = func(ctx context.Context) ([]domain.Order, error) {
		return []domain.Order{{ID: 1}, {ID: 2}, {ID: 3}}, nil
	}

	var upserted []uint
	w := NewSyncWorker(fetcher,
		&mockOrderWriter{UpsertFunc: func(ctx context.Context, o domain.Order) error {
			if o.ID == 2 {
				return errors.New("duplicate key")
			}
			upserted = append(upserted, o.ID)
			return nil
		}},
		&mockFeedbackWriter{}, &mockInventoryWriter{},
		time.Minute, zap.NewNop())

	w.syncOrders(context.Background())

	assert.Equal(t, []uint{1, 3}, upserted)
}

func TestSyncOnce_FetchFailureSkipsCollectionOnly(t *testing.T) {
	fetcher := emptyFetcher()
	fetcher.FetchOrdersFunc = func(ctx context.Context) ([]domain.Order, error) {
		return nil, errors.New("upstream down")
	}
	fetcher.FetchInventoryFunc = func(ctx context.Context) ([]domain.InventoryItem, error) {
		return []domain.InventoryItem{{ID: 10}}, nil
	}

	orderUpserts := 0
	itemUpserts := 0
	w := NewSyncWorker(fetcher,
		&mockOrderWriter{UpsertFunc: func(ctx context.Context, o domain.Order) error {
			orderUpserts++
			return nil
		}},
		&mockFeedbackWriter{UpsertFunc: func(ctx context.Context, f domain.Feedback) error { return nil }},
		&mockInventoryWriter{UpsertFunc: func(ctx context.Context, i domain.InventoryItem) error {
			itemUpserts++
			return nil
		}},
		time.Minute, zap.NewNop())

	w.SyncOnce(context.Background())

	assert.Equal(t, 0, orderUpserts)
	assert.Equal(t, 1, itemUpserts)
}

func TestStart_CancelledContextSkipsInitialPass(t *testing.T) {
	fetches := 0
	fetcher := emptyFetcher()
	fetcher.FetchOrdersFunc = func(ctx context.Context) ([]domain.Order, error) {
		fetches++
		return nil, nil
	}
	fetcher.FetchFeedbackFunc = func(ctx context.Context) ([]domain.Feedback, error) {
		fetches++
		return nil, nil
	}
	fetcher.FetchInventoryFunc = func(ctx context.Context) ([]domain.InventoryItem, error) {
		fetches++
		return nil, nil
	}

	w := NewSyncWorker(fetcher,
		&mockOrderWriter{}, &mockFeedbackWriter{}, &mockInventoryWriter{},
		time.Minute, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w.Start(ctx)

	assert.Equal(t, 0, fetches)
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	w := NewSyncWorker(emptyFetcher(),
		&mockOrderWriter{UpsertFunc: func(ctx context.Context, o domain.Order) error { return nil }},
		&mockFeedbackWriter{UpsertFunc: func(ctx context.Context, f domain.Feedback) error { return nil }},
		&mockInventoryWriter{UpsertFunc: func(ctx context.Context, i domain.InventoryItem) error { return nil }},
		10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}
