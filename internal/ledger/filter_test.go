package ledger

import (
	"testing"
	"time"

	"delivery_ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(t time.Time) *time.Time { return &t }

func TestFilterByDateRange(t *testing.T) {
	entries := []models.DeliveryEntry{
		newEntry(rameshID, "Ramesh", day(2024, 7, 19, 23, 59)),
		newEntry(rameshID, "Ramesh", day(2024, 7, 20, 0, 0)),
		newEntry(rameshID, "Ramesh", day(2024, 7, 20, 23, 59)),
		newEntry(rameshID, "Ramesh", day(2024, 7, 21, 0, 0)),
	}

	tests := []struct {
		name string
		rng  *DateRange
		want []int
	}{
		{name: "nil range is identity", rng: nil, want: []int{0, 1, 2, 3}},
		{name: "missing from is identity", rng: &DateRange{To: ptr(day(2024, 7, 20, 0, 0))}, want: []int{0, 1, 2, 3}},
		{name: "single day includes late entries", rng: &DateRange{From: ptr(day(2024, 7, 20, 0, 0)), To: ptr(day(2024, 7, 20, 0, 0))}, want: []int{1, 2}},
		{name: "to defaults to from", rng: &DateRange{From: ptr(day(2024, 7, 20, 0, 0))}, want: []int{1, 2}},
		{name: "from is not normalised", rng: &DateRange{From: ptr(day(2024, 7, 20, 12, 0))}, want: []int{2}},
		{name: "multi day", rng: &DateRange{From: ptr(day(2024, 7, 19, 0, 0)), To: ptr(day(2024, 7, 21, 0, 0))}, want: []int{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByDateRange(entries, tt.rng)
			want := make([]models.DeliveryEntry, 0, len(tt.want))
			for _, i := range tt.want {
				want = append(want, entries[i])
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestFilterByDateRange_EndOfDayInclusive(t *testing.T) {
	from := day(2024, 7, 20, 0, 0)
	e := newEntry(rameshID, "Ramesh", time.Date(2024, 7, 20, 23, 59, 59, 999999999, time.UTC))
	got := FilterByDateRange([]models.DeliveryEntry{e}, &DateRange{From: &from, To: &from})
	require.Len(t, got, 1)
}

func TestFilterByDateRange_OtherRecordKinds(t *testing.T) {
	from := day(2024, 7, 20, 0, 0)
	rng := &DateRange{From: &from}

	advances := []models.AdvancePayment{
		newAdvance(rameshID, "Ramesh", day(2024, 7, 20, 18, 0), "100"),
		newAdvance(rameshID, "Ramesh", day(2024, 7, 22, 18, 0), "100"),
	}
	remittances := []models.CompanyCODPayment{{Date: day(2024, 7, 20, 9, 0)}, {Date: day(2024, 7, 1, 9, 0)}}
	expenses := []models.OwnerExpense{{Date: day(2024, 7, 20, 22, 0)}}

	assert.Len(t, FilterByDateRange(advances, rng), 1)
	assert.Len(t, FilterByDateRange(remittances, rng), 1)
	assert.Len(t, FilterByDateRange(expenses, rng), 1)
}

func TestFilterByCourier(t *testing.T) {
	entries := []models.DeliveryEntry{
		newEntry(rameshID, "Ramesh", day(2024, 7, 1, 0, 0)),
		newEntry(sureshID, "Suresh", day(2024, 7, 1, 0, 0)),
		newEntry(rameshID, "Ramesh", day(2024, 7, 2, 0, 0)),
	}

	assert.Equal(t, entries, FilterByCourier(entries, AllCouriers))
	assert.Equal(t, entries, FilterByCourier(entries, ""))

	got := FilterByCourier(entries, rameshID.String())
	require.Len(t, got, 2)
	assert.Equal(t, entries[0], got[0])
	assert.Equal(t, entries[2], got[1])

	// the sentinel is exact: "all" is just an unknown courier
	assert.Empty(t, FilterByCourier(entries, "all"))
}

func TestFilterByArea(t *testing.T) {
	entries := []models.DeliveryEntry{
		newEntry(rameshID, "Ramesh", day(2024, 7, 1, 0, 0), withArea(models.AreaCharoda, 10, 1), withArea(models.AreaBhilai3, 5, 0), withRVP(2)),
		newEntry(sureshID, "Suresh", day(2024, 7, 1, 0, 0), withArea(models.AreaCharoda, 8, 0)),
		newEntry(sureshID, "Suresh", day(2024, 7, 2, 0, 0), withArea(models.AreaBhilai3, 0, 3)),
	}

	assert.Equal(t, entries, FilterByArea(entries, AllAreas))

	got := FilterByArea(entries, string(models.AreaBhilai3))
	require.Len(t, got, 2)
	assert.Equal(t, []models.AreaCount{{Area: models.AreaBhilai3, Delivered: 5}}, got[0].Areas)
	assert.Equal(t, 2, got[0].RVP)
	assert.Equal(t, 3, got[1].Areas[0].Returned)

	// input untouched
	assert.Len(t, entries[0].Areas, 2)
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2024, 7, 20, 15, 4, 5, 6, loc)

	assert.Equal(t, time.Date(2024, 7, 20, 0, 0, 0, 0, loc), StartOfDay(ts))
	assert.Equal(t, time.Date(2024, 7, 20, 23, 59, 59, 999999999, loc), EndOfDay(ts))
}
