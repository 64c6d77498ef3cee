package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bakehouse/internal/analytics"
	"bakehouse/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InventoryReader interface {
	ListAll(ctx context.Context) ([]domain.InventoryItem, error)
}

type InventoryController struct {
	inventory InventoryReader
	logger    *zap.Logger
}

func NewInventoryController(inventory InventoryReader, logger *zap.Logger) *InventoryController {
	return &InventoryController{
		inventory: inventory,
		logger:    logger,
	}
}

type LowStockResponse struct {
	Count int                    `json:"count"`
	Items []LowStockItemResponse `json:"items"`
}

type LowStockItemResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	CurrentStock int     `json:"currentStock"`
	MinimumStock int     `json:"minimumStock"`
	OutOfStock   bool    `json:"outOfStock"`
	StockValue   float64 `json:"stockValue"`
}

func (c *InventoryController) GetLowStock(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	items, err := c.inventory.ListAll(r.Context())
	if err != nil {
		logger.Error("failed to load inventory", zap.Error(err))
		c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
		return
	}

	alerts := analytics.LowStockAlerts(items)
	resp := LowStockResponse{
		Count: len(alerts),
		Items: []LowStockItemResponse{},
	}
	for _, item := range alerts {
		resp.Items = append(resp.Items, LowStockItemResponse{
			ID:           item.ID,
			Name:         item.Name,
			CurrentStock: item.CurrentStock,
			MinimumStock: item.EffectiveMinimumStock(),
			OutOfStock:   item.OutOfStock(),
			StockValue:   item.StockValue(),
		})
	}

	c.writeJSON(w, http.StatusOK, resp)
}

type errorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *InventoryController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code, message string) {
	c.writeJSON(w, statusCode, errorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

func (c *InventoryController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
