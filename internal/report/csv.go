// Package report renders ledger outputs for people: CSV spreadsheets and
// WhatsApp text digests.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"delivery_ledger/internal/ledger"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// WriteExportCSV writes one row per entry and, for a single-courier export,
// a trailing summary block.
func WriteExportCSV(w io.Writer, exp *ledger.Export) error {
	cw := csv.NewWriter(w)

	header := []string{"Date", "Courier"}
	for _, a := range exp.Areas {
		header = append(header, string(a)+" Delivered", string(a)+" Returned")
	}
	header = append(header,
		"RVP", "Total Parcels", "Expected COD", "Actual COD",
		"COD Shortage", "Shortage Reason", "On-spot Advance", "Final Payout",
	)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, r := range exp.Rows {
		rec := []string{r.Date.Format(dateLayout), r.CourierName}
		for _, c := range r.Areas {
			rec = append(rec, strconv.Itoa(c.Delivered), strconv.Itoa(c.Returned))
		}
		rec = append(rec,
			strconv.Itoa(r.RVP),
			strconv.Itoa(r.TotalParcels),
			money(r.ExpectedCOD),
			money(r.ActualCOD),
			money(r.CODShortage),
			r.ShortageReason,
			money(r.OnSpotAdvance),
			money(r.FinalPayout),
		)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	if s := exp.Summary; s != nil {
		block := [][]string{
			{},
			{"Summary", s.CourierName},
			{"Total Delivered", strconv.Itoa(s.TotalDelivered)},
			{"Total RVP", strconv.Itoa(s.TotalRVP)},
			{"Total Parcels", strconv.Itoa(s.TotalParcels)},
			{"Total COD Shortage", money(s.TotalCODShortage)},
			{"On-spot Advance", money(s.OnSpotAdvance)},
			{"Separate Advance", money(s.SeparateAdvance)},
			{"Total Advance", money(s.TotalAdvance)},
			{"Final Net Payout", money(s.FinalNetPayout)},
		}
		if err := cw.WriteAll(block); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
