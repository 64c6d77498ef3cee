package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"bakehouse/internal/analytics"
	"bakehouse/internal/domain"
	apperrors "bakehouse/internal/errors"
	"bakehouse/internal/report"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateParamLayout = "2006-01-02"

type ReportUseCase interface {
	Generate(ctx context.Context, reportType report.Type, r domain.DateRange) (report.Document, error)
	TopSellingCakes(ctx context.Context, r domain.DateRange, limit int) ([]analytics.CakeSales, error)
	CustomerInsights(ctx context.Context, customerID uint) (report.CustomerInsights, error)
}

type ReportController struct {
	useCase ReportUseCase
	logger  *zap.Logger
	now     func() time.Time
}

func NewReportController(useCase ReportUseCase, logger *zap.Logger) *ReportController {
	return &ReportController{
		useCase: useCase,
		logger:  logger,
		now:     time.Now,
	}
}

type ReportResponse struct {
	Type      string                    `json:"type"`
	StartDate string                    `json:"startDate"`
	EndDate   string                    `json:"endDate"`
	Orders    *OrdersSectionResponse    `json:"orders,omitempty"`
	Feedback  *FeedbackSectionResponse  `json:"feedback,omitempty"`
	Inventory *InventorySectionResponse `json:"inventory,omitempty"`
}

type OrdersSectionResponse struct {
	TotalOrders       int                   `json:"totalOrders"`
	TotalRevenue      float64               `json:"totalRevenue"`
	AverageOrderValue float64               `json:"averageOrderValue"`
	StatusBreakdown   map[string]int        `json:"statusBreakdown"`
	RecentOrders      []RecentOrderResponse `json:"recentOrders"`
}

type RecentOrderResponse struct {
	ID          uint      `json:"id"`
	OrderNumber string    `json:"orderNumber"`
	Status      string    `json:"status"`
	TotalAmount float64   `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type FeedbackSectionResponse struct {
	TotalFeedback      int                      `json:"totalFeedback"`
	AverageRating      float64                  `json:"averageRating"`
	RatingDistribution map[int]int              `json:"ratingDistribution"`
	RecentFeedback     []RecentFeedbackResponse `json:"recentFeedback"`
}

type RecentFeedbackResponse struct {
	ID        string    `json:"id"`
	OrderID   uint      `json:"orderId"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type InventorySectionResponse struct {
	TotalProducts   int                  `json:"totalProducts"`
	LowStockCount   int                  `json:"lowStockCount"`
	OutOfStockCount int                  `json:"outOfStockCount"`
	TotalStockValue float64              `json:"totalStockValue"`
	LowStockAlerts  []StockAlertResponse `json:"lowStockAlerts"`
}

type StockAlertResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	CurrentStock int    `json:"currentStock"`
	MinimumStock int    `json:"minimumStock"`
}

type CakeSalesResponse struct {
	CakeID            uint    `json:"cakeId"`
	Name              string  `json:"name"`
	Sales             int     `json:"sales"`
	Revenue           float64 `json:"revenue"`
	OrderCount        int     `json:"orderCount"`
	ProfitMargin      float64 `json:"profitMargin"`
	DaysSinceLastSale *int    `json:"daysSinceLastSale"`
}

type CustomerStatsResponse struct {
	TotalOrders       int                    `json:"totalOrders"`
	TotalSpent        float64                `json:"totalSpent"`
	AverageOrderValue float64                `json:"averageOrderValue"`
	OrderFrequency    float64                `json:"orderFrequency"`
	FavoriteItems     []FavoriteItemResponse `json:"favoriteItems"`
}

type FavoriteItemResponse struct {
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	TotalSpent float64 `json:"totalSpent"`
}

func (c *ReportController) GetReport(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	reportType := report.Type(r.URL.Query().Get("type"))
	if reportType == "" {
		reportType = report.TypeOrders
	}

	dateRange, ok := c.parseRange(w, r, traceID)
	if !ok {
		return
	}

	doc, err := c.useCase.Generate(r.Context(), reportType, dateRange)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toReportResponse(doc))
}

func (c *ReportController) GetTopSellingCakes(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	dateRange, ok := c.parseRange(w, r, traceID)
	if !ok {
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.writeValidationError(w, traceID, "invalid limit", apperrors.ValidationDetail{
				Field:   "limit",
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}

	cakes, err := c.useCase.TopSellingCakes(r.Context(), dateRange, limit)
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	resp := make([]CakeSalesResponse, 0, len(cakes))
	for _, cake := range cakes {
		resp = append(resp, toCakeSalesResponse(cake, c.now().UTC()))
	}
	c.writeJSON(w, http.StatusOK, resp)
}

func (c *ReportController) GetCustomerStats(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	customerIDStr := chi.URLParam(r, "customerID")
	customerID, err := strconv.ParseUint(customerIDStr, 10, 64)
	if err != nil || customerID == 0 {
		c.writeValidationError(w, traceID, "invalid customerID", apperrors.ValidationDetail{
			Field:   "customerID",
			Message: "customerID must be a positive integer",
		})
		return
	}

	insights, err := c.useCase.CustomerInsights(r.Context(), uint(customerID))
	if err != nil {
		c.handleError(w, traceID, err, logger)
		return
	}

	resp := CustomerStatsResponse{
		TotalOrders:       insights.Stats.TotalOrders,
		TotalSpent:        insights.Stats.TotalSpent,
		AverageOrderValue: insights.Stats.AverageOrderValue,
		OrderFrequency:    insights.Stats.OrderFrequency,
		FavoriteItems:     []FavoriteItemResponse{},
	}
	for _, item := range insights.FavoriteItems {
		resp.FavoriteItems = append(resp.FavoriteItems, FavoriteItemResponse{
			Name:       item.Name,
			Quantity:   item.Quantity,
			TotalSpent: item.TotalSpent,
		})
	}

	c.writeJSON(w, http.StatusOK, resp)
}

// parseRange reads start_date and end_date (YYYY-MM-DD). Both default
// to today when absent, matching the dashboard's "today at a glance"
// behavior.
func (c *ReportController) parseRange(w http.ResponseWriter, r *http.Request, traceID string) (domain.DateRange, bool) {
	today := c.now().UTC().Truncate(24 * time.Hour)

	start, ok := c.parseDateParam(w, r, traceID, "start_date", today)
	if !ok {
		return domain.DateRange{}, false
	}
	end, ok := c.parseDateParam(w, r, traceID, "end_date", today)
	if !ok {
		return domain.DateRange{}, false
	}

	return domain.NewDateRange(start, end), true
}

func (c *ReportController) parseDateParam(w http.ResponseWriter, r *http.Request, traceID, name string, fallback time.Time) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}

	parsed, err := time.ParseInLocation(dateParamLayout, raw, time.UTC)
	if err != nil {
		c.writeValidationError(w, traceID, "invalid date parameter", apperrors.ValidationDetail{
			Field:   name,
			Message: name + " must be formatted as YYYY-MM-DD",
		})
		return time.Time{}, false
	}
	return parsed, true
}

func (c *ReportController) handleError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if dre, ok := apperrors.IsDateRangeError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusBadRequest, "INVALID_DATE_RANGE", dre.Error())
		return
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeErrorResponse(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeErrorResponse(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred")
}

func toReportResponse(doc report.Document) ReportResponse {
	resp := ReportResponse{
		Type:      string(doc.Type),
		StartDate: doc.Range.Start.Format(dateParamLayout),
		EndDate:   doc.Range.End.Format(dateParamLayout),
	}

	if doc.Orders != nil {
		section := &OrdersSectionResponse{
			TotalOrders:       doc.Orders.TotalOrders,
			TotalRevenue:      doc.Orders.TotalRevenue,
			AverageOrderValue: doc.Orders.AverageOrderValue,
			StatusBreakdown:   doc.Orders.StatusBreakdown,
			RecentOrders:      []RecentOrderResponse{},
		}
		for _, order := range doc.Orders.RecentOrders {
			section.RecentOrders = append(section.RecentOrders, RecentOrderResponse{
				ID:          order.ID,
				OrderNumber: order.OrderNumber,
				Status:      order.Status,
				TotalAmount: order.TotalAmount,
				CreatedAt:   order.CreatedAt,
			})
		}
		resp.Orders = section
	}

	if doc.Feedback != nil {
		section := &FeedbackSectionResponse{
			TotalFeedback:      doc.Feedback.TotalFeedback,
			AverageRating:      doc.Feedback.AverageRating,
			RatingDistribution: doc.Feedback.RatingDistribution,
			RecentFeedback:     []RecentFeedbackResponse{},
		}
		for _, fb := range doc.Feedback.RecentFeedback {
			section.RecentFeedback = append(section.RecentFeedback, RecentFeedbackResponse{
				ID:        fb.ID,
				OrderID:   fb.OrderID,
				Rating:    fb.Rating,
				Message:   fb.Message,
				CreatedAt: fb.CreatedAt,
			})
		}
		resp.Feedback = section
	}

	if doc.Inventory != nil {
		section := &InventorySectionResponse{
			TotalProducts:   doc.Inventory.TotalProducts,
			LowStockCount:   doc.Inventory.LowStockCount,
			OutOfStockCount: doc.Inventory.OutOfStockCount,
			TotalStockValue: doc.Inventory.TotalStockValue,
			LowStockAlerts:  []StockAlertResponse{},
		}
		for _, item := range doc.Inventory.LowStockAlerts {
			section.LowStockAlerts = append(section.LowStockAlerts, StockAlertResponse{
				ID:           item.ID,
				Name:         item.Name,
				CurrentStock: item.CurrentStock,
				MinimumStock: item.EffectiveMinimumStock(),
			})
		}
		resp.Inventory = section
	}

	return resp
}

// toCakeSalesResponse derives daysSinceLastSale at render time. A zero
// LastSoldAt means no sale timestamp is known, rendered as null rather
// than a fabricated number.
func toCakeSalesResponse(cake analytics.CakeSales, now time.Time) CakeSalesResponse {
	resp := CakeSalesResponse{
		CakeID:       cake.CakeID,
		Name:         cake.Name,
		Sales:        cake.Sales,
		Revenue:      cake.Revenue,
		OrderCount:   cake.OrderCount,
		ProfitMargin: cake.ProfitMargin,
	}
	if !cake.LastSoldAt.IsZero() {
		days := int(now.Sub(cake.LastSoldAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
		resp.DaysSinceLastSale = &days
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

func (c *ReportController) writeErrorResponse(w http.ResponseWriter, traceID string, statusCode int, code, message string) {
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

func (c *ReportController) writeValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *ReportController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
