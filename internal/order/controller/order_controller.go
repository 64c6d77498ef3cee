package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"bakehouse/internal/domain"
	apperrors "bakehouse/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderUseCase interface {
	UpdateStatus(ctx context.Context, orderID uint, next string, notes *string) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID uint) (*domain.Order, error)
}

type OrderController struct {
	useCase OrderUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

type OrderResponse struct {
	ID              uint                  `json:"id"`
	OrderNumber     string                `json:"orderNumber"`
	CustomerID      uint                  `json:"customerId"`
	CustomerName    string                `json:"customerName"`
	Status          string                `json:"status"`
	TotalAmount     float64               `json:"totalAmount"`
	HasFeedback     bool                  `json:"hasFeedback"`
	Items           []LineItemResponse    `json:"items"`
	ShippingAddress *AddressResponse      `json:"shippingAddress,omitempty"`
	StatusHistory   []StatusEntryResponse `json:"statusHistory"`
	CreatedAt       time.Time             `json:"createdAt"`
}

type LineItemResponse struct {
	CakeID     uint    `json:"cakeId"`
	CakeName   string  `json:"cakeName"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
}

type AddressResponse struct {
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city"`
	PostalCode string  `json:"postalCode"`
	Phone      *string `json:"phone,omitempty"`
}

type StatusEntryResponse struct {
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.parseOrderID(w, r, traceID)
	if !ok {
		return
	}

	order, err := c.useCase.GetOrder(r.Context(), orderID)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.parseOrderID(w, r, traceID)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Status == "" {
		c.writeValidationError(w, traceID, "validation failed", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status is required",
		})
		return
	}

	order, err := c.useCase.UpdateStatus(r.Context(), orderID, req.Status, req.Notes)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (c *OrderController) parseOrderID(w http.ResponseWriter, r *http.Request, traceID string) (uint, bool) {
	orderIDStr := chi.URLParam(r, "orderID")
	orderID, err := strconv.ParseUint(orderIDStr, 10, 64)
	if err != nil || orderID == 0 {
		c.writeValidationError(w, traceID, "invalid orderID", apperrors.ValidationDetail{
			Field:   "orderID",
			Message: "orderID must be a positive integer",
		})
		return 0, false
	}
	return uint(orderID), true
}

func (c *OrderController) handleError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	if te, ok := apperrors.IsTransitionError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusConflict, "INVALID_TRANSITION", te.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func toOrderResponse(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		CustomerID:    order.CustomerID,
		CustomerName:  order.CustomerName,
		Status:        order.Status,
		TotalAmount:   order.TotalAmount,
		HasFeedback:   order.HasFeedback,
		Items:         []LineItemResponse{},
		StatusHistory: []StatusEntryResponse{},
		CreatedAt:     order.CreatedAt,
	}

	for _, item := range order.Items {
		resp.Items = append(resp.Items, LineItemResponse{
			CakeID:     item.CakeID,
			CakeName:   item.CakeName,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}

	if order.ShippingAddress != nil {
		resp.ShippingAddress = &AddressResponse{
			Line1:      order.ShippingAddress.Line1,
			Line2:      order.ShippingAddress.Line2,
			City:       order.ShippingAddress.City,
			PostalCode: order.ShippingAddress.PostalCode,
			Phone:      order.ShippingAddress.Phone,
		}
	}

	for _, entry := range order.StatusHistory {
		resp.StatusHistory = append(resp.StatusHistory, StatusEntryResponse{
			Status:    entry.Status,
			Notes:     entry.Notes,
			CreatedAt: entry.CreatedAt,
		})
	}

	return resp
}

type errorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *OrderController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code, message string) {
	c.writeJSON(w, statusCode, errorResponse{
		TraceID:   traceID,
		Status:    statusCode,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
