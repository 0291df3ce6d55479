package services

import (
	"context"
	"fmt"
	"strings"

	"delivery_ledger/internal/ledger"
	"delivery_ledger/internal/models"
	"delivery_ledger/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type RateService interface {
	// Table returns the rate table used for every computation. Without stored
	// settings it is the default table at the configured courier rate.
	Table(ctx context.Context) (ledger.RateTable, error)
	ListRates(ctx context.Context) ([]models.AreaRate, error)
	UpsertRate(ctx context.Context, rate *models.AreaRate) error
}

type rateService struct {
	rateRepo    repository.RateRepository
	courierRate decimal.Decimal
	logger      *zap.Logger
}

func NewRateService(rateRepo repository.RateRepository, courierRate decimal.Decimal, logger *zap.Logger) RateService {
	return &rateService{rateRepo: rateRepo, courierRate: courierRate, logger: logger}
}

func (s *rateService) Table(ctx context.Context) (ledger.RateTable, error) {
	settings, err := s.rateRepo.GetAll(ctx)
	if err != nil {
		return ledger.RateTable{}, fmt.Errorf("failed to load area rates: %w", err)
	}
	if len(settings) == 0 {
		t := ledger.DefaultRateTable()
		t.CourierRate = s.courierRate
		return t, nil
	}
	return ledger.NewRateTable(settings, s.courierRate), nil
}

func (s *rateService) ListRates(ctx context.Context) ([]models.AreaRate, error) {
	rates, err := s.rateRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list area rates: %w", err)
	}
	return rates, nil
}

func (s *rateService) UpsertRate(ctx context.Context, rate *models.AreaRate) error {
	rate.Area = models.Area(strings.ToLower(strings.TrimSpace(string(rate.Area))))
	if rate.Area == "" {
		return invalid(ErrUnknownArea, "area is required")
	}
	if rate.CompanyRate.IsNegative() || (rate.CourierRate.Valid && rate.CourierRate.Decimal.IsNegative()) {
		return invalid(ErrInvalidRate, "area %s", rate.Area)
	}
	if strings.TrimSpace(rate.Name) == "" {
		rate.Name = string(rate.Area)
	}
	if !rate.IsActive {
		if err := s.checkDeactivation(ctx, rate); err != nil {
			return err
		}
	}
	if err := s.rateRepo.Upsert(ctx, rate); err != nil {
		return fmt.Errorf("failed to save area rate: %w", err)
	}
	s.logger.Info("area rate saved",
		zap.String("area", string(rate.Area)),
		zap.String("company_rate", rate.CompanyRate.String()),
		zap.Bool("rvp_default", rate.IsRVPDefault),
	)
	return nil
}

// checkDeactivation refuses to switch off the area reverse pickups are billed
// at. Flag another area first.
func (s *rateService) checkDeactivation(ctx context.Context, rate *models.AreaRate) error {
	if rate.IsRVPDefault {
		return invalid(ErrRVPAreaInactive, "area %s", rate.Area)
	}
	current, err := s.rateRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load area rates: %w", err)
	}
	for _, r := range current {
		if r.Area == rate.Area && r.IsRVPDefault {
			return invalid(ErrRVPAreaInactive, "area %s", rate.Area)
		}
	}
	return nil
}
