package repository

import (
	"context"

	"delivery_ledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdvanceRepository interface {
	Create(ctx context.Context, advance *models.AdvancePayment) error
	GetAll(ctx context.Context) ([]models.AdvancePayment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type RemittanceRepository interface {
	Create(ctx context.Context, payment *models.CompanyCODPayment) error
	GetAll(ctx context.Context) ([]models.CompanyCODPayment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type advanceRepository struct {
	db *gorm.DB
}

func NewAdvanceRepository(db *gorm.DB) AdvanceRepository {
	return &advanceRepository{db: db}
}

func (r *advanceRepository) Create(ctx context.Context, advance *models.AdvancePayment) error {
	return r.db.WithContext(ctx).Create(advance).Error
}

func (r *advanceRepository) GetAll(ctx context.Context) ([]models.AdvancePayment, error) {
	var advances []models.AdvancePayment
	err := r.db.WithContext(ctx).Order("date ASC").Order("created_at ASC").Find(&advances).Error
	return advances, err
}

func (r *advanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.AdvancePayment{}, id)
}

type remittanceRepository struct {
	db *gorm.DB
}

func NewRemittanceRepository(db *gorm.DB) RemittanceRepository {
	return &remittanceRepository{db: db}
}

func (r *remittanceRepository) Create(ctx context.Context, payment *models.CompanyCODPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *remittanceRepository) GetAll(ctx context.Context) ([]models.CompanyCODPayment, error) {
	var payments []models.CompanyCODPayment
	err := r.db.WithContext(ctx).Order("date ASC").Order("created_at ASC").Find(&payments).Error
	return payments, err
}

func (r *remittanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.CompanyCODPayment{}, id)
}

func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID) error {
	res := db.WithContext(ctx).Delete(model, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
