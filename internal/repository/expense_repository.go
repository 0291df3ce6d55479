package repository

import (
	"context"

	"delivery_ledger/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.OwnerExpense) error
	GetAll(ctx context.Context) ([]models.OwnerExpense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.OwnerExpense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetAll(ctx context.Context) ([]models.OwnerExpense, error) {
	var expenses []models.OwnerExpense
	err := r.db.WithContext(ctx).Order("date ASC").Order("created_at ASC").Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.OwnerExpense{}, id)
}
