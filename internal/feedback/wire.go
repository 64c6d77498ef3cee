package feedback

import (
	"database/sql"

	"bakehouse/internal/feedback/controller"
	"bakehouse/internal/feedback/repository"
	"bakehouse/internal/feedback/service"
	orderrepo "bakehouse/internal/order/repository"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.FeedbackController {
	feedbackRepo := repository.NewMySQLFeedbackRepository(db)
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	ledger := service.NewLedgerService(db, feedbackRepo, orderRepo, logger)
	return controller.NewFeedbackController(ledger, logger)
}
