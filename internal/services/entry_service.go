package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"delivery_ledger/internal/models"
	"delivery_ledger/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EntryService interface {
	CreateEntry(ctx context.Context, entry *models.DeliveryEntry) error
	ListEntries(ctx context.Context) ([]models.DeliveryEntry, error)
	DeleteEntry(ctx context.Context, id uuid.UUID) error
}

type entryService struct {
	entryRepo   repository.DeliveryRepository
	courierRepo repository.CourierRepository
	rates       RateService
	logger      *zap.Logger
}

func NewEntryService(entryRepo repository.DeliveryRepository, courierRepo repository.CourierRepository, rates RateService, logger *zap.Logger) EntryService {
	return &entryService{entryRepo: entryRepo, courierRepo: courierRepo, rates: rates, logger: logger}
}

// CreateEntry rejects anything the ledger would otherwise have to clamp, then
// stores the entry with a snapshot of the courier's current name.
func (s *entryService) CreateEntry(ctx context.Context, entry *models.DeliveryEntry) error {
	if entry.Date.IsZero() {
		return invalid(ErrMissingDate, "delivery entry")
	}
	if entry.RVP < 0 {
		return invalid(ErrNegativeCount, "rvp %d", entry.RVP)
	}
	if entry.ExpectedCOD.IsNegative() || entry.ActualCOD.IsNegative() || entry.OnSpotAdvance.IsNegative() {
		return invalid(ErrNegativeAmount, "expected %s, actual %s, advance %s",
			entry.ExpectedCOD, entry.ActualCOD, entry.OnSpotAdvance)
	}
	if entry.ActualCOD.GreaterThan(entry.ExpectedCOD) {
		return invalid(ErrCODExceedsExpected, "actual %s, expected %s", entry.ActualCOD, entry.ExpectedCOD)
	}

	table, err := s.rates.Table(ctx)
	if err != nil {
		return err
	}
	seen := make(map[models.Area]bool, len(entry.Areas))
	for i := range entry.Areas {
		c := &entry.Areas[i]
		c.Area = models.Area(strings.ToLower(strings.TrimSpace(string(c.Area))))
		if _, ok := table.PerArea[c.Area]; !ok {
			return invalid(ErrUnknownArea, "%q", c.Area)
		}
		if seen[c.Area] {
			return invalid(ErrDuplicateArea, "%q", c.Area)
		}
		seen[c.Area] = true
		if c.Delivered < 0 || c.Returned < 0 {
			return invalid(ErrNegativeCount, "area %s", c.Area)
		}
	}

	courier, err := s.courierRepo.GetByID(ctx, entry.CourierID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid(ErrCourierNotFound, "%s", entry.CourierID)
		}
		return fmt.Errorf("failed to load courier: %w", err)
	}
	entry.CourierName = courier.Name
	entry.CODShortageReason = strings.TrimSpace(entry.CODShortageReason)

	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to create delivery entry: %w", err)
	}
	s.logger.Info("delivery entry created",
		zap.String("entry_id", entry.ID.String()),
		zap.String("courier", entry.CourierName),
		zap.Time("date", entry.Date),
	)
	return nil
}

func (s *entryService) ListEntries(ctx context.Context) ([]models.DeliveryEntry, error) {
	entries, err := s.entryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery entries: %w", err)
	}
	return entries, nil
}

func (s *entryService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	if err := s.entryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete delivery entry: %w", err)
	}
	s.logger.Info("delivery entry deleted", zap.String("entry_id", id.String()))
	return nil
}
