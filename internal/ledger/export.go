package ledger

import (
	"sort"
	"time"

	"delivery_ledger/internal/models"

	"github.com/shopspring/decimal"
)

type ExportRow struct {
	Date           time.Time
	CourierID      string
	CourierName    string
	Areas          []models.AreaCount // one cell per Export.Areas, same order
	RVP            int
	TotalParcels   int
	ExpectedCOD    decimal.Decimal
	ActualCOD      decimal.Decimal
	CODShortage    decimal.Decimal
	ShortageReason string
	OnSpotAdvance  decimal.Decimal
	FinalPayout    decimal.Decimal
}

// CourierExportSummary closes a single-courier export. FinalNetPayout takes
// both on-spot and separate advances off.
type CourierExportSummary struct {
	CourierID        string
	CourierName      string
	TotalDelivered   int
	TotalRVP         int
	TotalParcels     int
	TotalCODShortage decimal.Decimal
	OnSpotAdvance    decimal.Decimal
	SeparateAdvance  decimal.Decimal
	TotalAdvance     decimal.Decimal
	FinalNetPayout   decimal.Decimal
}

type Export struct {
	Areas   []models.Area
	Rows    []ExportRow
	Summary *CourierExportSummary
}

// ProjectForExport flattens entries into chronological rows. Summary is only
// set when scope names a single courier; fleet totals come from Aggregate.
// Separate advances feed the summary only.
func ProjectForExport(
	entries []models.DeliveryEntry,
	advances []models.AdvancePayment,
	scope string,
	rates RateTable,
	dir Directory,
) Export {
	entries = FilterByCourier(entries, scope)
	ordered := make([]models.DeliveryEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Date.Before(ordered[j].Date) })

	exp := Export{Areas: exportAreas(ordered, rates)}
	exp.Rows = make([]ExportRow, 0, len(ordered))

	var sum *CourierExportSummary
	if scope != "" && scope != AllCouriers {
		sum = &CourierExportSummary{
			CourierID:        scope,
			TotalCODShortage: decimal.Zero,
			OnSpotAdvance:    decimal.Zero,
			SeparateAdvance:  decimal.Zero,
			TotalAdvance:     decimal.Zero,
			FinalNetPayout:   decimal.Zero,
		}
	}

	for _, e := range ordered {
		f := ComputeEntryFinancials(e, rates)
		row := ExportRow{
			Date:           e.Date,
			CourierID:      e.CourierKey(),
			CourierName:    dir.Name(e.CourierKey(), e.CourierName),
			RVP:            nonNegative(e.RVP),
			ExpectedCOD:    clamp(e.ExpectedCOD),
			ActualCOD:      clamp(e.ActualCOD),
			CODShortage:    f.CODShortage,
			ShortageReason: e.CODShortageReason,
			OnSpotAdvance:  clamp(e.OnSpotAdvance),
			FinalPayout:    f.NetPayout,
		}
		delivered := 0
		for _, a := range exp.Areas {
			c := e.Count(a)
			c.Delivered = nonNegative(c.Delivered)
			c.Returned = nonNegative(c.Returned)
			delivered += c.Delivered
			row.Areas = append(row.Areas, c)
		}
		row.TotalParcels = delivered + row.RVP
		exp.Rows = append(exp.Rows, row)

		if sum != nil {
			sum.CourierName = row.CourierName
			sum.TotalDelivered += delivered
			sum.TotalRVP += row.RVP
			sum.TotalParcels += row.TotalParcels
			sum.TotalCODShortage = sum.TotalCODShortage.Add(f.CODShortage)
			sum.OnSpotAdvance = sum.OnSpotAdvance.Add(row.OnSpotAdvance)
			sum.FinalNetPayout = sum.FinalNetPayout.Add(f.NetPayout)
		}
	}

	if sum != nil {
		for _, a := range FilterByCourier(advances, scope) {
			if sum.CourierName == "" {
				sum.CourierName = a.CourierName
			}
			sum.SeparateAdvance = sum.SeparateAdvance.Add(clamp(a.Amount))
		}
		sum.CourierName = dir.Name(scope, sum.CourierName)
		sum.TotalAdvance = sum.OnSpotAdvance.Add(sum.SeparateAdvance)
		sum.FinalNetPayout = sum.FinalNetPayout.Sub(sum.SeparateAdvance)
		exp.Summary = sum
	}
	return exp
}

// exportAreas is the column set: every configured area plus any legacy area
// still present on an entry.
func exportAreas(entries []models.DeliveryEntry, rates RateTable) []models.Area {
	seen := make(map[models.Area]bool)
	for _, a := range rates.Areas() {
		seen[a] = true
	}
	for _, e := range entries {
		for _, c := range e.Areas {
			seen[c.Area] = true
		}
	}
	areas := make([]models.Area, 0, len(seen))
	for a := range seen {
		areas = append(areas, a)
	}
	sort.Slice(areas, func(i, j int) bool { return areas[i] < areas[j] })
	return areas
}
