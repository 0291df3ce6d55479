package ledger

import (
	"sort"

	"delivery_ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Snapshot is one consistent read of every record kind, already filtered.
type Snapshot struct {
	Entries     []models.DeliveryEntry
	Advances    []models.AdvancePayment
	Remittances []models.CompanyCODPayment
	Expenses    []models.OwnerExpense
}

type AreaTotals struct {
	Area      models.Area `json:"area"`
	Delivered int         `json:"delivered"`
	Returned  int         `json:"returned"`
}

type Totals struct {
	Entries             int             `json:"entries"`
	TotalWork           int             `json:"total_work"`
	Delivered           int             `json:"delivered"`
	Returned            int             `json:"returned"`
	RVP                 int             `json:"rvp"`
	Areas               []AreaTotals    `json:"areas"`
	ExpectedCOD         decimal.Decimal `json:"expected_cod"`
	ActualCOD           decimal.Decimal `json:"actual_cod"`
	CODShortage         decimal.Decimal `json:"cod_shortage"`
	OnSpotAdvance       decimal.Decimal `json:"on_spot_advance"`
	SeparateAdvance     decimal.Decimal `json:"separate_advance"`
	TotalAdvance        decimal.Decimal `json:"total_advance"`
	GrossPayout         decimal.Decimal `json:"gross_payout"`
	NetPayout           decimal.Decimal `json:"net_payout"`
	CompanyEarning      decimal.Decimal `json:"company_earning"`
	ProfitBeforeExpense decimal.Decimal `json:"profit_before_expense"`
	OwnerExpense        decimal.Decimal `json:"owner_expense"`
	Profit              decimal.Decimal `json:"profit"`

	areas map[models.Area]*AreaTotals
}

type CourierSummary struct {
	CourierID   string `json:"courier_id"`
	CourierName string `json:"courier_name"`
	Totals
	// ProfitShare is the courier's fraction of pre-expense profit, zero when
	// that total is zero.
	ProfitShare decimal.Decimal `json:"profit_share"`
}

type Summary struct {
	Totals
	RemittedToCompany decimal.Decimal  `json:"remitted_to_company"`
	CODInHand         decimal.Decimal  `json:"cod_in_hand"`
	Couriers          []CourierSummary `json:"couriers"`
}

// Courier returns the breakdown for one courier key.
func (s Summary) Courier(id string) (CourierSummary, bool) {
	for _, c := range s.Couriers {
		if c.CourierID == id {
			return c, true
		}
	}
	return CourierSummary{}, false
}

// Directory maps courier ids to display names.
type Directory map[string]string

func NewDirectory(couriers []models.Courier) Directory {
	d := make(Directory, len(couriers))
	for _, c := range couriers {
		d[c.ID.String()] = c.Name
	}
	return d
}

// Name resolves id, falling back to the snapshot stored on the record when
// the courier has since been removed from the directory.
func (d Directory) Name(id, fallback string) string {
	if n, ok := d[id]; ok {
		return n
	}
	return fallback
}

// Aggregate folds a snapshot into global and per-courier totals. Owner
// expense is charged to the global profit in full and pro-rated to couriers
// by their share of pre-expense profit. The result does not depend on the
// order of the input slices.
func Aggregate(s Snapshot, rates RateTable, dir Directory) Summary {
	sum := Summary{Totals: newTotals()}
	couriers := make(map[string]*CourierSummary)
	courier := func(id, snapshot string) *CourierSummary {
		c, ok := couriers[id]
		if !ok {
			c = &CourierSummary{CourierID: id, Totals: newTotals()}
			couriers[id] = c
		}
		// Pick the smallest snapshot so the fallback name is order independent.
		if c.CourierName == "" || (snapshot != "" && snapshot < c.CourierName) {
			c.CourierName = snapshot
		}
		return c
	}

	for _, e := range s.Entries {
		f := ComputeEntryFinancials(e, rates)
		sum.addEntry(e, f)
		courier(e.CourierKey(), e.CourierName).addEntry(e, f)
	}
	for _, a := range s.Advances {
		amt := clamp(a.Amount)
		sum.addAdvance(amt)
		courier(a.CourierKey(), a.CourierName).addAdvance(amt)
	}

	remitted := decimal.Zero
	for _, p := range s.Remittances {
		remitted = remitted.Add(clamp(p.Amount))
	}
	expense := decimal.Zero
	for _, e := range s.Expenses {
		expense = expense.Add(clamp(e.Amount))
	}

	sum.OwnerExpense = expense
	sum.Profit = sum.ProfitBeforeExpense.Sub(expense)
	sum.RemittedToCompany = remitted
	sum.CODInHand = sum.ActualCOD.Sub(remitted).Sub(expense)
	sum.finish()

	total := sum.ProfitBeforeExpense
	sum.Couriers = make([]CourierSummary, 0, len(couriers))
	for _, c := range couriers {
		c.CourierName = dir.Name(c.CourierID, c.CourierName)
		c.ProfitShare = decimal.Zero
		c.OwnerExpense = decimal.Zero
		c.Profit = c.ProfitBeforeExpense
		if !total.IsZero() {
			c.ProfitShare = c.ProfitBeforeExpense.Div(total)
			c.OwnerExpense = expense.Mul(c.ProfitBeforeExpense).Div(total).Round(2)
			c.Profit = c.ProfitBeforeExpense.Sub(c.OwnerExpense)
		}
		c.finish()
		sum.Couriers = append(sum.Couriers, *c)
	}
	sort.Slice(sum.Couriers, func(i, j int) bool {
		a, b := sum.Couriers[i], sum.Couriers[j]
		if a.CourierName != b.CourierName {
			return a.CourierName < b.CourierName
		}
		return a.CourierID < b.CourierID
	})
	if !total.IsZero() && len(sum.Couriers) > 0 {
		allocateRemainder(sum.Couriers, expense)
	}
	return sum
}

// allocateRemainder gives the rounding leftover of the expense shares to the
// last courier so the shares add up to the expense exactly.
func allocateRemainder(couriers []CourierSummary, expense decimal.Decimal) {
	allocated := decimal.Zero
	for _, c := range couriers {
		allocated = allocated.Add(c.OwnerExpense)
	}
	rest := expense.Sub(allocated)
	if rest.IsZero() {
		return
	}
	last := &couriers[len(couriers)-1]
	last.OwnerExpense = last.OwnerExpense.Add(rest)
	last.Profit = last.ProfitBeforeExpense.Sub(last.OwnerExpense)
}

func newTotals() Totals {
	return Totals{
		ExpectedCOD:         decimal.Zero,
		ActualCOD:           decimal.Zero,
		CODShortage:         decimal.Zero,
		OnSpotAdvance:       decimal.Zero,
		SeparateAdvance:     decimal.Zero,
		TotalAdvance:        decimal.Zero,
		GrossPayout:         decimal.Zero,
		NetPayout:           decimal.Zero,
		CompanyEarning:      decimal.Zero,
		ProfitBeforeExpense: decimal.Zero,
		OwnerExpense:        decimal.Zero,
		Profit:              decimal.Zero,
		areas:               make(map[models.Area]*AreaTotals),
	}
}

func (t *Totals) addEntry(e models.DeliveryEntry, f EntryFinancials) {
	t.Entries++
	t.TotalWork += f.TotalWork
	for _, c := range e.Areas {
		at, ok := t.areas[c.Area]
		if !ok {
			at = &AreaTotals{Area: c.Area}
			t.areas[c.Area] = at
		}
		at.Delivered += nonNegative(c.Delivered)
		at.Returned += nonNegative(c.Returned)
		t.Delivered += nonNegative(c.Delivered)
		t.Returned += nonNegative(c.Returned)
	}
	t.RVP += nonNegative(e.RVP)
	t.ExpectedCOD = t.ExpectedCOD.Add(clamp(e.ExpectedCOD))
	t.ActualCOD = t.ActualCOD.Add(clamp(e.ActualCOD))
	t.CODShortage = t.CODShortage.Add(f.CODShortage)
	t.OnSpotAdvance = t.OnSpotAdvance.Add(clamp(e.OnSpotAdvance))
	t.GrossPayout = t.GrossPayout.Add(f.GrossPayout)
	t.NetPayout = t.NetPayout.Add(f.NetPayout)
	t.CompanyEarning = t.CompanyEarning.Add(f.CompanyEarning)
	t.ProfitBeforeExpense = t.ProfitBeforeExpense.Add(f.ProfitContribution)
}

func (t *Totals) addAdvance(amount decimal.Decimal) {
	t.SeparateAdvance = t.SeparateAdvance.Add(amount)
	t.NetPayout = t.NetPayout.Sub(amount)
}

func (t *Totals) finish() {
	t.TotalAdvance = t.OnSpotAdvance.Add(t.SeparateAdvance)
	t.Areas = make([]AreaTotals, 0, len(t.areas))
	for _, a := range t.areas {
		t.Areas = append(t.Areas, *a)
	}
	sort.Slice(t.Areas, func(i, j int) bool { return t.Areas[i].Area < t.Areas[j].Area })
	t.areas = nil
}
