package ledger

import (
	"sort"

	"github.com/shopspring/decimal"
)

type EarningsPoint struct {
	CourierID   string          `json:"courier_id"`
	CourierName string          `json:"courier_name"`
	Payout      decimal.Decimal `json:"payout"`
	Profit      decimal.Decimal `json:"profit"`
}

// EarningsSeries is the per-courier payout against profit bar series, biggest
// earners first. Profit is before owner expense.
func EarningsSeries(s Summary) []EarningsPoint {
	points := make([]EarningsPoint, 0, len(s.Couriers))
	for _, c := range s.Couriers {
		points = append(points, EarningsPoint{
			CourierID:   c.CourierID,
			CourierName: c.CourierName,
			Payout:      c.GrossPayout,
			Profit:      c.ProfitBeforeExpense,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Payout.Add(points[i].Profit).GreaterThan(points[j].Payout.Add(points[j].Profit))
	})
	return points
}
