package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AreaRate is the stored rate setting for one area. CourierRate is optional;
// when null the global courier rate applies.
type AreaRate struct {
	Area         Area                `json:"area" gorm:"type:varchar(32);primaryKey"`
	Name         string              `json:"name" gorm:"not null"`
	CompanyRate  decimal.Decimal     `json:"company_rate" gorm:"type:decimal(10,2);not null;default:0"`
	CourierRate  decimal.NullDecimal `json:"courier_rate" gorm:"type:decimal(10,2)"`
	IsRVPDefault bool                `json:"is_rvp_default"` // reverse pickups are billed at this area's rates
	IsActive     bool                `json:"is_active"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
