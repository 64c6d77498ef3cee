package domain

import "time"

// DefaultMinimumStock applies when a record carries no minimum of its own.
const DefaultMinimumStock = 5

type InventoryItem struct {
	ID           uint
	Name         string
	CurrentStock int
	MinimumStock int
	UnitCost     float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock reports whether the item is running low. Zero stock is
// classified as out-of-stock, not low-stock.
func (i InventoryItem) LowStock() bool {
	return i.CurrentStock > 0 && i.CurrentStock <= i.EffectiveMinimumStock()
}

func (i InventoryItem) OutOfStock() bool {
	return i.CurrentStock == 0
}

func (i InventoryItem) EffectiveMinimumStock() int {
	if i.MinimumStock <= 0 {
		return DefaultMinimumStock
	}
	return i.MinimumStock
}

// StockValue is the replacement cost of the current stock on hand.
func (i InventoryItem) StockValue() float64 {
	return float64(i.CurrentStock) * i.UnitCost
}
