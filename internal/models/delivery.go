package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Area identifies a service area (pincode) the franchise delivers in.
type Area string

const (
	AreaCharoda Area = "charoda"
	AreaBhilai3 Area = "bhilai3"
)

// DeliveryEntry is one courier's recorded activity for a day. Work is split
// into per-area counters; RVP has no area of its own.
type DeliveryEntry struct {
	ID                uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Date              time.Time       `json:"date" gorm:"index;not null"`
	CourierID         uuid.UUID       `json:"courier_id" gorm:"type:uuid;index;not null"`
	CourierName       string          `json:"courier_name"` // display snapshot, never used as a key
	Areas             []AreaCount     `json:"areas" gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE"`
	RVP               int             `json:"rvp" gorm:"not null;default:0"`
	ExpectedCOD       decimal.Decimal `json:"expected_cod" gorm:"type:decimal(12,2);not null;default:0"`
	ActualCOD         decimal.Decimal `json:"actual_cod" gorm:"type:decimal(12,2);not null;default:0"`
	CODShortageReason string          `json:"cod_shortage_reason,omitempty" gorm:"type:text"`
	OnSpotAdvance     decimal.Decimal `json:"on_spot_advance" gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt         time.Time       `json:"created_at"`
}

type AreaCount struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	EntryID   uuid.UUID `json:"-" gorm:"type:uuid;index;not null"`
	Area      Area      `json:"area" gorm:"type:varchar(32);not null"`
	Delivered int       `json:"delivered" gorm:"not null;default:0"`
	Returned  int       `json:"returned" gorm:"not null;default:0"`
}

func (e *DeliveryEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e DeliveryEntry) RecordDate() time.Time { return e.Date }

func (e DeliveryEntry) CourierKey() string { return e.CourierID.String() }

// Count returns the counters recorded for area, zero if the entry has none.
func (e DeliveryEntry) Count(area Area) AreaCount {
	for _, c := range e.Areas {
		if c.Area == area {
			return c
		}
	}
	return AreaCount{Area: area}
}
