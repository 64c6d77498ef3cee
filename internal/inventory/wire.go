package inventory

import (
	"database/sql"

	"bakehouse/internal/inventory/controller"
	"bakehouse/internal/inventory/repository"

	"go.uber.org/zap"
)

type Module struct {
	Repository *repository.MySQLInventoryRepository
	Controller *controller.InventoryController
}

func NewModule(db *sql.DB, logger *zap.Logger) *Module {
	repo := repository.NewMySQLInventoryRepository(db)
	return &Module{
		Repository: repo,
		Controller: controller.NewInventoryController(repo, logger),
	}
}
