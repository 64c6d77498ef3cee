package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsKnownStatus(t *testing.T) {
	for _, status := range OrderStatuses {
		assert.True(t, IsKnownStatus(status), status)
	}

	assert.False(t, IsKnownStatus("shipped"))
	assert.False(t, IsKnownStatus("PENDING"))
	assert.False(t, IsKnownStatus(""))
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(OrderStatusDelivered))
	assert.True(t, IsTerminalStatus(OrderStatusCancelled))

	assert.False(t, IsTerminalStatus(OrderStatusPending))
	assert.False(t, IsTerminalStatus(OrderStatusOutForDelivery))
}

func TestOrder_Creation(t *testing.T) {
	phone := "1234567890"
	createdAt := time.Now()

	order := Order{
		ID:           1,
		OrderNumber:  "BH-0001",
		CustomerID:   9,
		CustomerName: "Maria Lopez",
		Status:       OrderStatusPending,
		TotalAmount:  120.50,
		ShippingAddress: &ShippingAddress{
			Line1:      "123 Main St",
			City:       "Springfield",
			PostalCode: "12345",
			Phone:      &phone,
		},
		CreatedAt: createdAt,
	}

	assert.Equal(t, uint(1), order.ID)
	assert.Equal(t, "BH-0001", order.OrderNumber)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, 120.50, order.TotalAmount)
	assert.False(t, order.HasFeedback)
	assert.Equal(t, &phone, order.ShippingAddress.Phone)
	assert.Nil(t, order.ShippingAddress.Line2)
	assert.Equal(t, createdAt, order.CreatedAt)
}
