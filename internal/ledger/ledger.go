package ledger

import (
	"slices"
	"sort"
	"time"

	"delivery_ledger/internal/models"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDelivery     TransactionType = "delivery"
	TransactionAdvance      TransactionType = "advance"
	TransactionOwnerExpense TransactionType = "owner_expense"
)

// Transaction is one row of the running-balance ledger. Amount is the
// recorded figure (net payout for deliveries), Delta what it did to the
// balance and Balance the running total after it.
type Transaction struct {
	Type        TransactionType `json:"type"`
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	CourierID   string          `json:"courier_id,omitempty"`
	CourierName string          `json:"courier_name,omitempty"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Delta       decimal.Decimal `json:"delta"`
	Balance     decimal.Decimal `json:"balance"`
}

// BuildLedger interleaves deliveries, advances and owner expenses into one
// stream with a running balance. The courier filter is applied before the
// balance is walked so excluded couriers never leak into it. Owner expenses
// are listed only in the unfiltered view and do not move the balance.
// The result is most recent first.
func BuildLedger(
	entries []models.DeliveryEntry,
	advances []models.AdvancePayment,
	expenses []models.OwnerExpense,
	courier string,
	rates RateTable,
	dir Directory,
) []Transaction {
	entries = FilterByCourier(entries, courier)
	advances = FilterByCourier(advances, courier)
	allCouriers := courier == "" || courier == AllCouriers

	txs := make([]Transaction, 0, len(entries)+len(advances)+len(expenses))
	for _, e := range entries {
		net := ComputeEntryFinancials(e, rates).NetPayout
		txs = append(txs, Transaction{
			Type:        TransactionDelivery,
			ID:          e.ID.String(),
			Date:        e.Date,
			CourierID:   e.CourierKey(),
			CourierName: dir.Name(e.CourierKey(), e.CourierName),
			Description: e.CODShortageReason,
			Amount:      net,
			Delta:       net,
		})
	}
	for _, a := range advances {
		amt := clamp(a.Amount)
		txs = append(txs, Transaction{
			Type:        TransactionAdvance,
			ID:          a.ID.String(),
			Date:        a.Date,
			CourierID:   a.CourierKey(),
			CourierName: dir.Name(a.CourierKey(), a.CourierName),
			Amount:      amt,
			Delta:       amt.Neg(),
		})
	}
	if allCouriers {
		for _, x := range expenses {
			txs = append(txs, Transaction{
				Type:        TransactionOwnerExpense,
				ID:          x.ID.String(),
				Date:        x.Date,
				Description: x.Description,
				Amount:      clamp(x.Amount),
				Delta:       decimal.Zero,
			})
		}
	}

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })

	balance := decimal.Zero
	for i := range txs {
		balance = balance.Add(txs[i].Delta)
		txs[i].Balance = balance
	}
	slices.Reverse(txs)
	return txs
}
