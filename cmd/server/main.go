package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakehouse/internal/auth"
	"bakehouse/internal/config"
	"bakehouse/internal/feedback"
	feedbackrepo "bakehouse/internal/feedback/repository"
	"bakehouse/internal/infrastructure/logger"
	"bakehouse/internal/infrastructure/mysql"
	"bakehouse/internal/ingest"
	"bakehouse/internal/inventory"
	"bakehouse/internal/order"
	orderrepo "bakehouse/internal/order/repository"
	reportctrl "bakehouse/internal/report/controller"
	reportuc "bakehouse/internal/report/usecase"
	"bakehouse/internal/server"
	"bakehouse/internal/worker"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	feedbackRepo := feedbackrepo.NewMySQLFeedbackRepository(db)
	inventoryModule := inventory.NewModule(db, zapLogger)

	authCtrl := auth.NewModule(db, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, zapLogger)
	orderCtrl := order.NewModule(db, zapLogger)
	feedbackCtrl := feedback.NewModule(db, zapLogger)

	reportUseCase := reportuc.NewGenerateReportUseCase(orderRepo, feedbackRepo, inventoryModule.Repository, zapLogger)
	reportCtrl := reportctrl.NewReportController(reportUseCase, zapLogger)

	router := server.NewRouter(server.Controllers{
		Auth:      authCtrl,
		Order:     orderCtrl,
		Feedback:  feedbackCtrl,
		Report:    reportCtrl,
		Inventory: inventoryModule.Controller,
	}, cfg.Auth.JWTSecret, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	if cfg.Sync.Enabled {
		bakeryClient := ingest.NewClient(cfg.Bakery.BaseURL, cfg.Bakery.Token, zapLogger)
		syncWorker := worker.NewSyncWorker(bakeryClient, orderRepo, feedbackRepo,
			inventoryModule.Repository, cfg.Sync.Interval, zapLogger)
		go syncWorker.Start(workerCtx)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
