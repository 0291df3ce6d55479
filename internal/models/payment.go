package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AdvancePayment is cash handed to a courier outside of a delivery entry.
type AdvancePayment struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Date        time.Time       `json:"date" gorm:"index;not null"`
	CourierID   uuid.UUID       `json:"courier_id" gorm:"type:uuid;index;not null"`
	CourierName string          `json:"courier_name"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CompanyCODPayment is COD cash remitted by the operator to the contracting company.
type CompanyCODPayment struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Date      time.Time       `json:"date" gorm:"index;not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null;default:0"`
	Notes     string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time       `json:"created_at"`
}

type OwnerExpense struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Date        time.Time       `json:"date" gorm:"index;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null;default:0"`
	Description string          `json:"description" gorm:"not null"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (a *AdvancePayment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (p *CompanyCODPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (e *OwnerExpense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (a AdvancePayment) RecordDate() time.Time { return a.Date }

func (a AdvancePayment) CourierKey() string { return a.CourierID.String() }

func (p CompanyCODPayment) RecordDate() time.Time { return p.Date }

func (e OwnerExpense) RecordDate() time.Time { return e.Date }
