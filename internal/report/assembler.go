package report

import (
	"sort"

	"bakehouse/internal/analytics"
	"bakehouse/internal/domain"
	"bakehouse/internal/errors"
)

type Type string

const (
	TypeOrders    Type = "orders"
	TypeFeedback  Type = "feedback"
	TypeInventory Type = "inventory"
)

// DefaultExcerptLimit bounds the most-recent record excerpts embedded in
// a document for human review. Summary scalars are always computed over
// the full filtered set, never over the excerpt.
const DefaultExcerptLimit = 10

type Document struct {
	Type      Type
	Range     domain.DateRange
	Orders    *OrdersSection
	Feedback  *FeedbackSection
	Inventory *InventorySection
}

type OrdersSection struct {
	TotalOrders       int
	TotalRevenue      float64
	AverageOrderValue float64
	StatusBreakdown   map[string]int
	RecentOrders      []domain.Order
}

type FeedbackSection struct {
	TotalFeedback      int
	AverageRating      float64
	RatingDistribution map[int]int
	RecentFeedback     []domain.Feedback
}

// CustomerInsights is the per-customer analytics slice served next to
// the documents: lifetime stats plus the customer's favorite items.
type CustomerInsights struct {
	Stats         analytics.CustomerStats
	FavoriteItems []analytics.FavoriteItem
}

type InventorySection struct {
	TotalProducts   int
	LowStockCount   int
	OutOfStockCount int
	TotalStockValue float64
	LowStockAlerts  []domain.InventoryItem
}

// Assemble packages reducer outputs plus record excerpts into one
// document. The inputs are already filtered (inventory is never
// time-filtered, it has no timestamp dimension). Empty sets yield a
// zeroed document, not an error; whether to refuse rendering an empty
// report is the presentation layer's call.
func Assemble(reportType Type, orders []domain.Order, feedback []domain.Feedback, inventory []domain.InventoryItem, r domain.DateRange) (Document, error) {
	doc := Document{Type: reportType, Range: r}

	switch reportType {
	case TypeOrders:
		doc.Orders = assembleOrders(orders)
	case TypeFeedback:
		doc.Feedback = assembleFeedback(feedback)
	case TypeInventory:
		doc.Inventory = assembleInventory(inventory)
	default:
		return Document{}, errors.NewValidationError("unknown report type", errors.ValidationDetail{
			Field:   "type",
			Message: "type must be one of orders, feedback, inventory",
		})
	}

	return doc, nil
}

func assembleOrders(orders []domain.Order) *OrdersSection {
	return &OrdersSection{
		TotalOrders:       len(orders),
		TotalRevenue:      analytics.TotalRevenue(orders),
		AverageOrderValue: analytics.AverageOrderValue(orders),
		StatusBreakdown:   analytics.StatusBreakdown(orders),
		RecentOrders:      recentOrders(orders, DefaultExcerptLimit),
	}
}

func assembleFeedback(feedback []domain.Feedback) *FeedbackSection {
	return &FeedbackSection{
		TotalFeedback:      len(feedback),
		AverageRating:      analytics.AverageRating(feedback),
		RatingDistribution: analytics.RatingDistribution(feedback),
		RecentFeedback:     recentFeedback(feedback, DefaultExcerptLimit),
	}
}

func assembleInventory(inventory []domain.InventoryItem) *InventorySection {
	section := &InventorySection{
		TotalProducts:  len(inventory),
		LowStockAlerts: analytics.LowStockAlerts(inventory),
	}
	for _, item := range inventory {
		switch {
		case item.OutOfStock():
			section.OutOfStockCount++
		case item.LowStock():
			section.LowStockCount++
		}
		section.TotalStockValue += item.StockValue()
	}
	return section
}

func recentOrders(orders []domain.Order, limit int) []domain.Order {
	recent := append([]domain.Order(nil), orders...)
	sort.SliceStable(recent, func(a, b int) bool {
		return recent[a].CreatedAt.After(recent[b].CreatedAt)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	if recent == nil {
		recent = []domain.Order{}
	}
	return recent
}

func recentFeedback(feedback []domain.Feedback, limit int) []domain.Feedback {
	recent := append([]domain.Feedback(nil), feedback...)
	sort.SliceStable(recent, func(a, b int) bool {
		return recent[a].CreatedAt.After(recent[b].CreatedAt)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	if recent == nil {
		recent = []domain.Feedback{}
	}
	return recent
}
