package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"delivery_ledger/internal/models"
	"delivery_ledger/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CourierService interface {
	CreateCourier(ctx context.Context, name string) (*models.Courier, error)
	ListCouriers(ctx context.Context) ([]models.Courier, error)
	DeleteCourier(ctx context.Context, id uuid.UUID) error
}

type courierService struct {
	courierRepo repository.CourierRepository
	logger      *zap.Logger
}

func NewCourierService(courierRepo repository.CourierRepository, logger *zap.Logger) CourierService {
	return &courierService{courierRepo: courierRepo, logger: logger}
}

func (s *courierService) CreateCourier(ctx context.Context, name string) (*models.Courier, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, invalid(ErrInvalidCourierName, "got %q", name)
	}

	existing, err := s.courierRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list couriers: %w", err)
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return nil, fmt.Errorf("%w: %s", ErrCourierExists, c.Name)
		}
	}

	courier := &models.Courier{Name: name}
	if err := s.courierRepo.Create(ctx, courier); err != nil {
		return nil, fmt.Errorf("failed to create courier: %w", err)
	}
	s.logger.Info("courier created", zap.String("courier_id", courier.ID.String()), zap.String("name", courier.Name))
	return courier, nil
}

func (s *courierService) ListCouriers(ctx context.Context) ([]models.Courier, error) {
	couriers, err := s.courierRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list couriers: %w", err)
	}
	return couriers, nil
}

// DeleteCourier removes the courier from the directory. Recorded entries and
// advances are left alone and keep resolving through their name snapshot.
func (s *courierService) DeleteCourier(ctx context.Context, id uuid.UUID) error {
	if err := s.courierRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete courier: %w", err)
	}
	s.logger.Info("courier deleted", zap.String("courier_id", id.String()))
	return nil
}
