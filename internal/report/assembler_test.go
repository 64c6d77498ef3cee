package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/analytics"
	"bakehouse/internal/domain"
	"bakehouse/internal/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func janRange() domain.DateRange {
	return domain.NewDateRange(date(2024, 1, 1), date(2024, 1, 31))
}

func TestAssemble_OrdersDocument(t *testing.T) {
	orders := []domain.Order{
		{ID: 1, TotalAmount: 100, Status: domain.OrderStatusDelivered, CreatedAt: date(2024, 1, 5)},
		{ID: 2, TotalAmount: 50, Status: domain.OrderStatusPending, CreatedAt: date(2024, 1, 20)},
	}

	doc, err := Assemble(TypeOrders, orders, nil, nil, janRange())
	require.NoError(t, err)
	require.NotNil(t, doc.Orders)
	assert.Nil(t, doc.Feedback)
	assert.Nil(t, doc.Inventory)

	section := doc.Orders
	assert.Equal(t, 2, section.TotalOrders)
	assert.Equal(t, 150.0, section.TotalRevenue)
	assert.Equal(t, 75.0, section.AverageOrderValue)
	assert.Equal(t, 1, section.StatusBreakdown[domain.OrderStatusPending])
	assert.Equal(t, 1, section.StatusBreakdown[domain.OrderStatusDelivered])

	// Excerpt is most-recent first.
	require.Len(t, section.RecentOrders, 2)
	assert.Equal(t, uint(2), section.RecentOrders[0].ID)
	assert.Equal(t, uint(1), section.RecentOrders[1].ID)
}

func TestAssemble_EmptySetYieldsZeroedDocument(t *testing.T) {
	doc, err := Assemble(TypeOrders, nil, nil, nil, janRange())
	require.NoError(t, err)
	require.NotNil(t, doc.Orders)

	assert.Equal(t, 0, doc.Orders.TotalOrders)
	assert.Equal(t, 0.0, doc.Orders.TotalRevenue)
	assert.Equal(t, 0.0, doc.Orders.AverageOrderValue)
	assert.Empty(t, doc.Orders.RecentOrders)
	assert.NotNil(t, doc.Orders.RecentOrders)

	total := 0
	for _, count := range doc.Orders.StatusBreakdown {
		total += count
	}
	assert.Equal(t, 0, total)
	assert.Len(t, doc.Orders.StatusBreakdown, len(domain.OrderStatuses))
}

// Summary scalars must be recomputable from the same filtered set that
// produced the excerpt: no divergent computation paths.
func TestAssemble_ScalarsConsistentWithFilteredSet(t *testing.T) {
	orders := make([]domain.Order, 25)
	for i := range orders {
		orders[i] = domain.Order{
			ID:          uint(i + 1),
			TotalAmount: float64(i + 1),
			Status:      domain.OrderStatusDelivered,
			CreatedAt:   date(2024, 1, 1).Add(time.Duration(i) * time.Hour),
		}
	}

	doc, err := Assemble(TypeOrders, orders, nil, nil, janRange())
	require.NoError(t, err)

	assert.Equal(t, len(orders), doc.Orders.TotalOrders)
	assert.Equal(t, analytics.TotalRevenue(orders), doc.Orders.TotalRevenue)
	assert.Len(t, doc.Orders.RecentOrders, DefaultExcerptLimit)
	// The excerpt is a bounded view, not the basis of the scalars.
	assert.Greater(t, doc.Orders.TotalOrders, len(doc.Orders.RecentOrders))
}

func TestAssemble_FeedbackDocument(t *testing.T) {
	feedback := []domain.Feedback{
		{ID: "a", Rating: 5, CreatedAt: date(2024, 1, 2)},
		{ID: "b", Rating: 1, CreatedAt: date(2024, 1, 9)},
		{ID: "c", Rating: 0, CreatedAt: date(2024, 1, 4)}, // invalid rating
	}

	doc, err := Assemble(TypeFeedback, nil, feedback, nil, janRange())
	require.NoError(t, err)
	require.NotNil(t, doc.Feedback)

	assert.Equal(t, 3, doc.Feedback.TotalFeedback)
	assert.Equal(t, 3.0, doc.Feedback.AverageRating)
	assert.Equal(t, map[int]int{1: 1, 2: 0, 3: 0, 4: 0, 5: 1}, doc.Feedback.RatingDistribution)
	require.Len(t, doc.Feedback.RecentFeedback, 3)
	assert.Equal(t, "b", doc.Feedback.RecentFeedback[0].ID)
}

func TestAssemble_InventoryDocument(t *testing.T) {
	inventory := []domain.InventoryItem{
		{ID: 1, Name: "flour", CurrentStock: 3, MinimumStock: 5, UnitCost: 2},
		{ID: 2, Name: "sugar", CurrentStock: 0, MinimumStock: 5, UnitCost: 1},
		{ID: 3, Name: "eggs", CurrentStock: 40, MinimumStock: 10, UnitCost: 0.5},
	}

	doc, err := Assemble(TypeInventory, nil, nil, inventory, janRange())
	require.NoError(t, err)
	require.NotNil(t, doc.Inventory)

	section := doc.Inventory
	assert.Equal(t, 3, section.TotalProducts)
	assert.Equal(t, 1, section.LowStockCount)
	assert.Equal(t, 1, section.OutOfStockCount)
	assert.Equal(t, 3*2.0+0+40*0.5, section.TotalStockValue)
	// The alert list includes the zero-stock row.
	require.Len(t, section.LowStockAlerts, 2)
}

func TestAssemble_UnknownType(t *testing.T) {
	_, err := Assemble(Type("sales"), nil, nil, nil, janRange())
	require.Error(t, err)

	ve, ok := errors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "type", ve.Details[0].Field)
}
