package domain

import "time"

// Order statuses. The lifecycle is permissive: an admin may move an order
// between any two non-terminal statuses, in either direction. Only
// delivered and cancelled are terminal.
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusReady          = "ready"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// OrderStatuses lists every known status in lifecycle order.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func IsKnownStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsTerminalStatus(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCancelled
}

type Order struct {
	ID              uint
	OrderNumber     string
	CustomerID      uint
	CustomerName    string
	Status          string
	TotalAmount     float64
	HasFeedback     bool
	Items           []LineItem
	ShippingAddress *ShippingAddress
	StatusHistory   []StatusHistoryEntry
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type LineItem struct {
	ID         uint
	OrderID    uint
	CakeID     uint
	CakeName   string
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

type ShippingAddress struct {
	Line1      string
	Line2      *string
	City       string
	PostalCode string
	Phone      *string
}

// StatusHistoryEntry is append-only, one entry per transition, oldest first.
type StatusHistoryEntry struct {
	ID        uint
	OrderID   uint
	Status    string
	Notes     *string
	CreatedAt time.Time
}
