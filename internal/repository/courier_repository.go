package repository

import (
	"context"
	"errors"

	"delivery_ledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourierRepository interface {
	Create(ctx context.Context, courier *models.Courier) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Courier, error)
	GetAll(ctx context.Context) ([]models.Courier, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type courierRepository struct {
	db *gorm.DB
}

func NewCourierRepository(db *gorm.DB) CourierRepository {
	return &courierRepository{db: db}
}

func (r *courierRepository) Create(ctx context.Context, courier *models.Courier) error {
	return r.db.WithContext(ctx).Create(courier).Error
}

func (r *courierRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Courier, error) {
	var courier models.Courier
	err := r.db.WithContext(ctx).First(&courier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &courier, nil
}

func (r *courierRepository) GetAll(ctx context.Context) ([]models.Courier, error) {
	var couriers []models.Courier
	err := r.db.WithContext(ctx).Order("name ASC").Find(&couriers).Error
	return couriers, err
}

// Delete removes the directory entry only. Entries and advances keep their
// courier id and name snapshot.
func (r *courierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Courier{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
