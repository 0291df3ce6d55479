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

type AdvanceService interface {
	CreateAdvance(ctx context.Context, advance *models.AdvancePayment) error
	ListAdvances(ctx context.Context) ([]models.AdvancePayment, error)
	DeleteAdvance(ctx context.Context, id uuid.UUID) error
}

type RemittanceService interface {
	CreateRemittance(ctx context.Context, payment *models.CompanyCODPayment) error
	ListRemittances(ctx context.Context) ([]models.CompanyCODPayment, error)
	DeleteRemittance(ctx context.Context, id uuid.UUID) error
}

type ExpenseService interface {
	CreateExpense(ctx context.Context, expense *models.OwnerExpense) error
	ListExpenses(ctx context.Context) ([]models.OwnerExpense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

type advanceService struct {
	advanceRepo repository.AdvanceRepository
	courierRepo repository.CourierRepository
	logger      *zap.Logger
}

func NewAdvanceService(advanceRepo repository.AdvanceRepository, courierRepo repository.CourierRepository, logger *zap.Logger) AdvanceService {
	return &advanceService{advanceRepo: advanceRepo, courierRepo: courierRepo, logger: logger}
}

func (s *advanceService) CreateAdvance(ctx context.Context, advance *models.AdvancePayment) error {
	if advance.Date.IsZero() {
		return invalid(ErrMissingDate, "advance")
	}
	if !advance.Amount.IsPositive() {
		return invalid(ErrNonPositiveAmount, "advance %s", advance.Amount)
	}
	courier, err := s.courierRepo.GetByID(ctx, advance.CourierID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid(ErrCourierNotFound, "%s", advance.CourierID)
		}
		return fmt.Errorf("failed to load courier: %w", err)
	}
	advance.CourierName = courier.Name

	if err := s.advanceRepo.Create(ctx, advance); err != nil {
		return fmt.Errorf("failed to create advance: %w", err)
	}
	s.logger.Info("advance recorded",
		zap.String("advance_id", advance.ID.String()),
		zap.String("courier", advance.CourierName),
		zap.String("amount", advance.Amount.String()),
	)
	return nil
}

func (s *advanceService) ListAdvances(ctx context.Context) ([]models.AdvancePayment, error) {
	advances, err := s.advanceRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}
	return advances, nil
}

func (s *advanceService) DeleteAdvance(ctx context.Context, id uuid.UUID) error {
	return deleteRecord(ctx, s.logger, "advance", id, s.advanceRepo.Delete)
}

type remittanceService struct {
	remittanceRepo repository.RemittanceRepository
	logger         *zap.Logger
}

func NewRemittanceService(remittanceRepo repository.RemittanceRepository, logger *zap.Logger) RemittanceService {
	return &remittanceService{remittanceRepo: remittanceRepo, logger: logger}
}

func (s *remittanceService) CreateRemittance(ctx context.Context, payment *models.CompanyCODPayment) error {
	if payment.Date.IsZero() {
		return invalid(ErrMissingDate, "remittance")
	}
	if !payment.Amount.IsPositive() {
		return invalid(ErrNonPositiveAmount, "remittance %s", payment.Amount)
	}
	payment.Notes = strings.TrimSpace(payment.Notes)
	if err := s.remittanceRepo.Create(ctx, payment); err != nil {
		return fmt.Errorf("failed to create remittance: %w", err)
	}
	s.logger.Info("remittance recorded",
		zap.String("remittance_id", payment.ID.String()),
		zap.String("amount", payment.Amount.String()),
	)
	return nil
}

func (s *remittanceService) ListRemittances(ctx context.Context) ([]models.CompanyCODPayment, error) {
	payments, err := s.remittanceRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list remittances: %w", err)
	}
	return payments, nil
}

func (s *remittanceService) DeleteRemittance(ctx context.Context, id uuid.UUID) error {
	return deleteRecord(ctx, s.logger, "remittance", id, s.remittanceRepo.Delete)
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	logger      *zap.Logger
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, logger *zap.Logger) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, logger: logger}
}

func (s *expenseService) CreateExpense(ctx context.Context, expense *models.OwnerExpense) error {
	if expense.Date.IsZero() {
		return invalid(ErrMissingDate, "expense")
	}
	if !expense.Amount.IsPositive() {
		return invalid(ErrNonPositiveAmount, "expense %s", expense.Amount)
	}
	expense.Description = strings.TrimSpace(expense.Description)
	if utf8.RuneCountInString(expense.Description) < 3 {
		return invalid(ErrInvalidDescription, "got %q", expense.Description)
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	s.logger.Info("owner expense recorded",
		zap.String("expense_id", expense.ID.String()),
		zap.String("amount", expense.Amount.String()),
	)
	return nil
}

func (s *expenseService) ListExpenses(ctx context.Context) ([]models.OwnerExpense, error) {
	expenses, err := s.expenseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	return deleteRecord(ctx, s.logger, "expense", id, s.expenseRepo.Delete)
}

func deleteRecord(ctx context.Context, logger *zap.Logger, kind string, id uuid.UUID, del func(context.Context, uuid.UUID) error) error {
	if err := del(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	logger.Info(kind+" deleted", zap.String("id", id.String()))
	return nil
}
