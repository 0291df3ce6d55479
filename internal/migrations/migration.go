package migrations

import (
	"context"
	"fmt"

	"delivery_ledger/internal/ledger"
	"delivery_ledger/internal/models"
	"delivery_ledger/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations creates or updates every table and seeds the default area
// rates when none are stored. Existing data is never dropped.
func RunMigrations(ctx context.Context, db *gorm.DB, logger *zap.Logger) error {
	logger.Info("running database migrations")

	err := db.WithContext(ctx).AutoMigrate(
		&models.Courier{},
		&models.DeliveryEntry{},
		&models.AreaCount{},
		&models.AdvancePayment{},
		&models.CompanyCODPayment{},
		&models.OwnerExpense{},
		&models.AreaRate{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := createDefaultRates(ctx, repository.NewRateRepository(db), logger); err != nil {
		logger.Warn("failed to create default rates", zap.Error(err))
	}

	logger.Info("database migrations completed")
	return nil
}

var areaNames = map[models.Area]string{
	models.AreaCharoda: "Charoda",
	models.AreaBhilai3: "Bhilai-3",
}

// DefaultAreaRates is the stored form of ledger.DefaultRateTable.
func DefaultAreaRates() []models.AreaRate {
	table := ledger.DefaultRateTable()
	rates := make([]models.AreaRate, 0, len(table.PerArea))
	for _, area := range table.Areas() {
		name, ok := areaNames[area]
		if !ok {
			name = string(area)
		}
		rates = append(rates, models.AreaRate{
			Area:         area,
			Name:         name,
			CompanyRate:  table.PerArea[area].CompanyRate,
			IsRVPDefault: area == table.RVPArea,
			IsActive:     true,
		})
	}
	return rates
}

func createDefaultRates(ctx context.Context, repo repository.RateRepository, logger *zap.Logger) error {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("area rates already configured", zap.Int("areas", len(existing)))
		return nil
	}

	for _, rate := range DefaultAreaRates() {
		rate := rate
		if err := repo.Upsert(ctx, &rate); err != nil {
			return fmt.Errorf("failed to seed rate for %s: %w", rate.Area, err)
		}
		logger.Info("seeded area rate",
			zap.String("area", string(rate.Area)),
			zap.String("company_rate", rate.CompanyRate.String()),
		)
	}
	return nil
}
