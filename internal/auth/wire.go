package auth

import (
	"database/sql"
	"time"

	"bakehouse/internal/auth/controller"
	"bakehouse/internal/auth/repository"
	"bakehouse/internal/auth/service"

	"go.uber.org/zap"
)

func NewModule(db *sql.DB, secret string, tokenTTL time.Duration, logger *zap.Logger) *controller.AuthController {
	users := repository.NewMySQLUserRepository(db)
	svc := service.NewAuthService(users, secret, tokenTTL, logger)
	return controller.NewAuthController(svc, logger)
}
