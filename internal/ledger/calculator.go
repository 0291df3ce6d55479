package ledger

import (
	"delivery_ledger/internal/models"

	"github.com/shopspring/decimal"
)

// EntryFinancials is the money view of one delivery entry.
type EntryFinancials struct {
	TotalWork          int
	CODShortage        decimal.Decimal
	GrossPayout        decimal.Decimal
	NetPayout          decimal.Decimal
	CompanyEarning     decimal.Decimal
	ProfitContribution decimal.Decimal
}

// ComputeEntryFinancials prices one entry. The shortage reason is never read:
// a shortage is charged to the courier whatever the recorded cause.
func ComputeEntryFinancials(entry models.DeliveryEntry, rates RateTable) EntryFinancials {
	var f EntryFinancials
	gross := decimal.Zero
	earning := decimal.Zero

	for _, c := range entry.Areas {
		delivered := nonNegative(c.Delivered)
		r := rates.Lookup(c.Area)
		n := decimal.NewFromInt(int64(delivered))
		gross = gross.Add(n.Mul(r.CourierRate))
		earning = earning.Add(n.Mul(r.CompanyRate))
		f.TotalWork += delivered
	}

	rvp := nonNegative(entry.RVP)
	if rvp > 0 {
		r := rates.RVPRates()
		n := decimal.NewFromInt(int64(rvp))
		gross = gross.Add(n.Mul(r.CourierRate))
		earning = earning.Add(n.Mul(r.CompanyRate))
		f.TotalWork += rvp
	}

	f.CODShortage = clamp(entry.ExpectedCOD.Sub(entry.ActualCOD))
	f.GrossPayout = gross
	f.NetPayout = gross.Sub(clamp(entry.OnSpotAdvance)).Sub(f.CODShortage)
	f.CompanyEarning = earning
	f.ProfitContribution = earning.Sub(gross)
	return f
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
