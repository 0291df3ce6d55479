package repository

import "errors"

//go:generate mockgen -destination=mocks/mock_repository.go -package=mock_repository delivery_ledger/internal/repository CourierRepository,DeliveryRepository,AdvanceRepository,RemittanceRepository,ExpenseRepository,RateRepository

var ErrNotFound = errors.New("record not found")
