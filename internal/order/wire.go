package order

import (
	"database/sql"

	"bakehouse/internal/order/controller"
	"bakehouse/internal/order/repository"
	"bakehouse/internal/order/service"
	"bakehouse/internal/order/usecase"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.OrderController {
	orderRepo := repository.NewMySQLOrderRepository(db)
	engine := service.NewTransitionService(logger)
	uc := usecase.NewUpdateStatusUseCase(db, orderRepo, engine, logger)
	return controller.NewOrderController(uc, logger)
}
