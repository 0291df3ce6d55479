// Package ledger turns recorded delivery, advance, remittance and expense
// events into payouts, running balances and profit figures. It performs no
// I/O and never returns errors; bad data degrades to zero values.
package ledger

import (
	"sort"

	"delivery_ledger/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultCourierRate is paid per unit of work when no override is configured.
const DefaultCourierRate = 14

// DefaultRVPArea is the area whose rates bill reverse pickups. RVP work
// carries no area of its own, so this is a business policy, not derived data.
const DefaultRVPArea = models.AreaCharoda

// Rates is the resolved pair for one area.
type Rates struct {
	CourierRate decimal.Decimal
	CompanyRate decimal.Decimal
}

// AreaRates holds the configured rates of one area. A nil CourierRate means
// the table-wide courier rate applies.
type AreaRates struct {
	CompanyRate decimal.Decimal
	CourierRate *decimal.Decimal
}

type RateTable struct {
	CourierRate decimal.Decimal
	PerArea     map[models.Area]AreaRates
	RVPArea     models.Area
}

func DefaultRateTable() RateTable {
	return RateTable{
		CourierRate: decimal.NewFromInt(DefaultCourierRate),
		PerArea: map[models.Area]AreaRates{
			models.AreaCharoda: {CompanyRate: decimal.NewFromInt(19)},
			models.AreaBhilai3: {CompanyRate: decimal.NewFromInt(35)},
		},
		RVPArea: DefaultRVPArea,
	}
}

// NewRateTable builds a table from stored settings. Inactive rows are
// skipped. The RVP area is the row flagged IsRVPDefault, falling back to
// DefaultRVPArea.
func NewRateTable(settings []models.AreaRate, courierRate decimal.Decimal) RateTable {
	t := RateTable{
		CourierRate: courierRate,
		PerArea:     make(map[models.Area]AreaRates, len(settings)),
		RVPArea:     DefaultRVPArea,
	}
	for _, s := range settings {
		if !s.IsActive {
			continue
		}
		r := AreaRates{CompanyRate: s.CompanyRate}
		if s.CourierRate.Valid {
			v := s.CourierRate.Decimal
			r.CourierRate = &v
		}
		t.PerArea[s.Area] = r
		if s.IsRVPDefault {
			t.RVPArea = s.Area
		}
	}
	return t
}

// Lookup returns the rates for area. Work in an unknown or inactive area is
// still paid at the table-wide courier rate but bills the company nothing.
func (t RateTable) Lookup(area models.Area) Rates {
	r, ok := t.PerArea[area]
	if !ok {
		return Rates{CourierRate: t.CourierRate, CompanyRate: decimal.Zero}
	}
	courier := t.CourierRate
	if r.CourierRate != nil {
		courier = *r.CourierRate
	}
	return Rates{CourierRate: courier, CompanyRate: r.CompanyRate}
}

// RVPRates returns the rates reverse pickups are billed at.
func (t RateTable) RVPRates() Rates {
	return t.Lookup(t.RVPArea)
}

// Areas lists the configured areas in sorted order.
func (t RateTable) Areas() []models.Area {
	areas := make([]models.Area, 0, len(t.PerArea))
	for a := range t.PerArea {
		areas = append(areas, a)
	}
	sort.Slice(areas, func(i, j int) bool { return areas[i] < areas[j] })
	return areas
}
