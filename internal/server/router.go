package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	authctrl "bakehouse/internal/auth/controller"
	"bakehouse/internal/domain"
	feedbackctrl "bakehouse/internal/feedback/controller"
	inventoryctrl "bakehouse/internal/inventory/controller"
	orderctrl "bakehouse/internal/order/controller"
	reportctrl "bakehouse/internal/report/controller"
)

type Controllers struct {
	Auth      *authctrl.AuthController
	Order     *orderctrl.OrderController
	Feedback  *feedbackctrl.FeedbackController
	Report    *reportctrl.ReportController
	Inventory *inventoryctrl.InventoryController
}

func NewRouter(ctrls Controllers, jwtSecret string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/api/auth/login", ctrls.Auth.Login)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(jwtSecret, logger))

		r.Get("/api/orders/{orderID}", ctrls.Order.GetOrder)
		r.Get("/api/orders/{orderID}/feedback", ctrls.Feedback.ViewByOrder)

		r.Post("/api/feedback", ctrls.Feedback.Create)
		r.Put("/api/feedback/{feedbackID}", ctrls.Feedback.Edit)
		r.Delete("/api/feedback/{feedbackID}", ctrls.Feedback.Delete)

		r.Get("/api/analytics/customers/{customerID}/stats", ctrls.Report.GetCustomerStats)

		r.Group(func(r chi.Router) {
			r.Use(RequireRole(domain.RoleAdmin))

			r.Post("/api/orders/{orderID}/update_status", ctrls.Order.UpdateStatus)
			r.Get("/api/reports", ctrls.Report.GetReport)
			r.Get("/api/analytics/top_selling_cakes", ctrls.Report.GetTopSellingCakes)
			r.Get("/api/inventory/low_stock", ctrls.Inventory.GetLowStock)
		})
	})

	return r
}
