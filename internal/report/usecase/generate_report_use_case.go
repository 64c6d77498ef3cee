package usecase

import (
	"context"
	"time"

	"bakehouse/internal/analytics"
	"bakehouse/internal/domain"
	"bakehouse/internal/report"

	"go.uber.org/zap"
)

type OrderReader interface {
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]domain.Order, error)
}

type FeedbackReader interface {
	ListAll(ctx context.Context) ([]domain.Feedback, error)
}

type InventoryReader interface {
	ListAll(ctx context.Context) ([]domain.InventoryItem, error)
	ListCakeMargins(ctx context.Context) (map[uint]float64, error)
}

// GenerateReportUseCase runs the full pipeline: fetch, validate range,
// filter, reduce, assemble. The pipeline has no hidden state, so
// re-running it (dashboard refresh) is naturally idempotent.
type GenerateReportUseCase struct {
	orders    OrderReader
	feedback  FeedbackReader
	inventory InventoryReader
	logger    *zap.Logger
	now       func() time.Time
}

func NewGenerateReportUseCase(
	orders OrderReader,
	feedback FeedbackReader,
	inventory InventoryReader,
	logger *zap.Logger,
) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		orders:    orders,
		feedback:  feedback,
		inventory: inventory,
		logger:    logger,
		now:       time.Now,
	}
}

func (uc *GenerateReportUseCase) Generate(ctx context.Context, reportType report.Type, r domain.DateRange) (report.Document, error) {
	if err := analytics.ValidateRange(r, uc.now()); err != nil {
		return report.Document{}, err
	}

	var (
		filteredOrders   []domain.Order
		filteredFeedback []domain.Feedback
		inventory        []domain.InventoryItem
		err              error
	)

	switch reportType {
	case report.TypeOrders:
		var orders []domain.Order
		orders, err = uc.orders.ListAll(ctx)
		if err == nil {
			filteredOrders = analytics.FilterOrders(orders, r)
		}
	case report.TypeFeedback:
		var feedback []domain.Feedback
		feedback, err = uc.feedback.ListAll(ctx)
		if err == nil {
			filteredFeedback = analytics.FilterFeedback(feedback, r)
		}
	case report.TypeInventory:
		// Inventory has no timestamp dimension; it is never filtered.
		inventory, err = uc.inventory.ListAll(ctx)
	}
	if err != nil {
		uc.logger.Error("failed to load report data", zap.String("reportType", string(reportType)), zap.Error(err))
		return report.Document{}, err
	}

	doc, err := report.Assemble(reportType, filteredOrders, filteredFeedback, inventory, r)
	if err != nil {
		return report.Document{}, err
	}

	uc.logger.Info("report generated",
		zap.String("reportType", string(reportType)),
		zap.Time("rangeStart", r.StartInstant()),
		zap.Time("rangeEnd", r.EndInstant()))

	return doc, nil
}

func (uc *GenerateReportUseCase) TopSellingCakes(ctx context.Context, r domain.DateRange, limit int) ([]analytics.CakeSales, error) {
	if err := analytics.ValidateRange(r, uc.now()); err != nil {
		return nil, err
	}

	orders, err := uc.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	margins, err := uc.inventory.ListCakeMargins(ctx)
	if err != nil {
		return nil, err
	}

	return analytics.TopSellingCakes(analytics.FilterOrders(orders, r), margins, limit), nil
}

func (uc *GenerateReportUseCase) CustomerInsights(ctx context.Context, customerID uint) (report.CustomerInsights, error) {
	orders, err := uc.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return report.CustomerInsights{}, err
	}

	return report.CustomerInsights{
		Stats:         analytics.CustomerLifetimeStats(orders),
		FavoriteItems: analytics.FavoriteItems(orders, analytics.DefaultFavoriteItemsLimit),
	}, nil
}
