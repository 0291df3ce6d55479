package repository

import (
	"context"

	"delivery_ledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryRepository interface {
	Create(ctx context.Context, entry *models.DeliveryEntry) error
	GetAll(ctx context.Context) ([]models.DeliveryEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type deliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

// Create stores the entry and its area counters in one transaction.
func (r *deliveryRepository) Create(ctx context.Context, entry *models.DeliveryEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(entry).Error
	})
}

// GetAll returns entries in insertion order within a day, which the ledger
// relies on to break ties.
func (r *deliveryRepository) GetAll(ctx context.Context) ([]models.DeliveryEntry, error) {
	var entries []models.DeliveryEntry
	err := r.db.WithContext(ctx).
		Preload("Areas", func(db *gorm.DB) *gorm.DB { return db.Order("area ASC") }).
		Order("date ASC").Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

func (r *deliveryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", id).Delete(&models.AreaCount{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.DeliveryEntry{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
