package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"delivery_ledger/internal/config"
	"delivery_ledger/internal/database"
	"delivery_ledger/internal/migrations"
	"delivery_ledger/internal/models"
	"delivery_ledger/internal/repository"
	"delivery_ledger/internal/services"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	fmt.Println("Initializing database...")
	ctx := context.Background()

	cfg := config.Load()
	logger := zap.NewNop()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal("Invalid timezone:", err)
	}
	courierRate, err := decimal.NewFromString(cfg.CourierRate)
	if err != nil {
		log.Fatal("Invalid courier rate:", err)
	}

	db, err := database.Initialize(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Creating tables and default area rates...")
	if err := migrations.RunMigrations(ctx, db, logger); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	courierRepo := repository.NewCourierRepository(db)
	rateService := services.NewRateService(repository.NewRateRepository(db), courierRate, logger)
	courierService := services.NewCourierService(courierRepo, logger)
	entryService := services.NewEntryService(repository.NewDeliveryRepository(db), courierRepo, rateService, logger)
	advanceService := services.NewAdvanceService(repository.NewAdvanceRepository(db), courierRepo, logger)
	remittanceService := services.NewRemittanceService(repository.NewRemittanceRepository(db), logger)
	expenseService := services.NewExpenseService(repository.NewExpenseRepository(db), logger)

	existing, err := courierService.ListCouriers(ctx)
	if err != nil {
		log.Fatal("Failed to list couriers:", err)
	}
	if len(existing) > 0 {
		fmt.Println("Couriers already exist, skipping demo data")
		return
	}

	fmt.Println("Creating demo couriers...")
	ramesh, err := courierService.CreateCourier(ctx, "Ramesh")
	if err != nil {
		log.Fatal("Failed to create courier:", err)
	}
	suresh, err := courierService.CreateCourier(ctx, "Suresh")
	if err != nil {
		log.Fatal("Failed to create courier:", err)
	}

	now := time.Now().In(loc)
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, loc)
	today := yesterday.AddDate(0, 0, 1)

	fmt.Println("Creating demo entries...")
	entries := []*models.DeliveryEntry{
		{
			Date:      yesterday,
			CourierID: ramesh.ID,
			Areas: []models.AreaCount{
				{Area: models.AreaCharoda, Delivered: 20, Returned: 2},
				{Area: models.AreaBhilai3, Delivered: 10, Returned: 1},
			},
			RVP:               3,
			ExpectedCOD:       decimal.NewFromInt(5000),
			ActualCOD:         decimal.NewFromInt(4800),
			CODShortageReason: "customer paid short",
			OnSpotAdvance:     decimal.NewFromInt(200),
		},
		{
			Date:      today,
			CourierID: suresh.ID,
			Areas: []models.AreaCount{
				{Area: models.AreaCharoda, Delivered: 25},
			},
			ExpectedCOD: decimal.NewFromInt(3000),
			ActualCOD:   decimal.NewFromInt(3000),
		},
	}
	for _, entry := range entries {
		if err := entryService.CreateEntry(ctx, entry); err != nil {
			log.Fatal("Failed to create entry:", err)
		}
	}

	fmt.Println("Creating demo payments...")
	if err := advanceService.CreateAdvance(ctx, &models.AdvancePayment{
		Date:      today,
		CourierID: ramesh.ID,
		Amount:    decimal.NewFromInt(300),
	}); err != nil {
		log.Fatal("Failed to create advance:", err)
	}
	if err := remittanceService.CreateRemittance(ctx, &models.CompanyCODPayment{
		Date:   today,
		Amount: decimal.NewFromInt(6000),
		Notes:  "bank deposit",
	}); err != nil {
		log.Fatal("Failed to create remittance:", err)
	}
	if err := expenseService.CreateExpense(ctx, &models.OwnerExpense{
		Date:        today,
		Amount:      decimal.NewFromInt(150),
		Description: "fuel for delivery bike",
	}); err != nil {
		log.Fatal("Failed to create expense:", err)
	}

	fmt.Println("Database initialization completed successfully!")
}
