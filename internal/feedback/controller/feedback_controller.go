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

type FeedbackLedger interface {
	Create(ctx context.Context, orderID uint, rating int, message string, imageRef *string) (*domain.Feedback, error)
	Edit(ctx context.Context, feedbackID string, rating int, message string, imageRef *string) (*domain.Feedback, error)
	Delete(ctx context.Context, feedbackID string) error
	View(ctx context.Context, orderID uint) (*domain.Feedback, error)
}

type FeedbackController struct {
	ledger FeedbackLedger
	logger *zap.Logger
}

func NewFeedbackController(ledger FeedbackLedger, logger *zap.Logger) *FeedbackController {
	return &FeedbackController{
		ledger: ledger,
		logger: logger,
	}
}

type FeedbackRequest struct {
	OrderID  uint    `json:"orderId"`
	Rating   int     `json:"rating"`
	Message  string  `json:"message"`
	ImageRef *string `json:"imageRef,omitempty"`
}

type FeedbackResponse struct {
	ID        string    `json:"id"`
	OrderID   uint      `json:"orderId"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	ImageRef  *string   `json:"imageRef,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c *FeedbackController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.OrderID == 0 {
		c.writeValidationError(w, "validation failed", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId is required",
		})
		return
	}

	feedback, err := c.ledger.Create(r.Context(), req.OrderID, req.Rating, req.Message, req.ImageRef)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, toFeedbackResponse(feedback))
}

func (c *FeedbackController) Edit(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	feedbackID := chi.URLParam(r, "feedbackID")

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	feedback, err := c.ledger.Edit(r.Context(), feedbackID, req.Rating, req.Message, req.ImageRef)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toFeedbackResponse(feedback))
}

func (c *FeedbackController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	feedbackID := chi.URLParam(r, "feedbackID")

	if err := c.ledger.Delete(r.Context(), feedbackID); err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *FeedbackController) ViewByOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderIDStr := chi.URLParam(r, "orderID")
	orderID, err := strconv.ParseUint(orderIDStr, 10, 64)
	if err != nil || orderID == 0 {
		c.writeValidationError(w, "invalid orderID", apperrors.ValidationDetail{
			Field:   "orderID",
			Message: "orderID must be a positive integer",
		})
		return
	}

	feedback, err := c.ledger.View(r.Context(), uint(orderID))
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	if feedback == nil {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", "no feedback for this order")
		return
	}

	c.writeJSON(w, http.StatusOK, toFeedbackResponse(feedback))
}

// Each feedback error code maps to its own HTTP status and message so
// the caller can render a specific prompt, never a generic failure.
func (c *FeedbackController) handleError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if fe, ok := apperrors.IsFeedbackError(err); ok {
		status := http.StatusUnprocessableEntity
		switch fe.Code {
		case apperrors.FeedbackDuplicate:
			status = http.StatusConflict
		case apperrors.FeedbackNotFound:
			status = http.StatusNotFound
		}
		c.writeErrorResponse(w, traceID, status, fe.Code, fe.Message)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func toFeedbackResponse(feedback *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        feedback.ID,
		OrderID:   feedback.OrderID,
		Rating:    feedback.Rating,
		Message:   feedback.Message,
		ImageRef:  feedback.ImageRef,
		CreatedAt: feedback.CreatedAt,
	}
}

type errorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (c *FeedbackController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code, message string) {
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

func (c *FeedbackController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *FeedbackController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
