package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"delivery_ledger/internal/config"
	"delivery_ledger/internal/database"
	"delivery_ledger/internal/handlers"
	"delivery_ledger/internal/migrations"
	"delivery_ledger/internal/redis"
	"delivery_ledger/internal/repository"
	"delivery_ledger/internal/services"
	"delivery_ledger/pkg/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal("invalid timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	courierRate, err := decimal.NewFromString(cfg.CourierRate)
	if err != nil {
		logger.Fatal("invalid courier rate", zap.String("courier_rate", cfg.CourierRate), zap.Error(err))
	}

	db, err := database.Initialize(cfg.DatabaseURL, cfg.LogLevel == "debug")
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := migrations.RunMigrations(context.Background(), db, logger); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	whatsappClient := whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppUsername, cfg.WhatsAppPassword, cfg.WhatsAppPath)

	// Repositories
	courierRepo := repository.NewCourierRepository(db)
	entryRepo := repository.NewDeliveryRepository(db)
	advanceRepo := repository.NewAdvanceRepository(db)
	remittanceRepo := repository.NewRemittanceRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	rateRepo := repository.NewRateRepository(db)

	// Services
	rateService := services.NewRateService(rateRepo, courierRate, logger)
	courierService := services.NewCourierService(courierRepo, logger)
	entryService := services.NewEntryService(entryRepo, courierRepo, rateService, logger)
	advanceService := services.NewAdvanceService(advanceRepo, courierRepo, logger)
	remittanceService := services.NewRemittanceService(remittanceRepo, logger)
	expenseService := services.NewExpenseService(expenseRepo, logger)
	ledgerService := services.NewLedgerService(courierRepo, entryRepo, advanceRepo, remittanceRepo, expenseRepo, rateService, logger)
	sessionService := services.NewSessionService(
		redisClient,
		time.Duration(cfg.SessionTimeout)*time.Second,
		time.Duration(cfg.CacheTTL)*time.Second,
		logger,
	)
	notificationService := services.NewNotificationService(ledgerService, whatsappClient, cfg.OwnerWhatsApp, logger)

	// Handlers
	apiHandler := handlers.NewAPIHandler(courierService, entryService, advanceService, remittanceService, expenseService, rateService, sessionService, loc)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, sessionService, notificationService, loc)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestLogger(logger))
	handlers.RegisterRoutes(router, apiHandler, ledgerHandler, handlers.OperatorAuth(cfg.OperatorUsername, cfg.OperatorPasswordHash, logger))

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
