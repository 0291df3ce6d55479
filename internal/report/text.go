package report

import (
	"fmt"
	"strings"

	"delivery_ledger/internal/ledger"

	"github.com/shopspring/decimal"
)

// SummaryText renders a summary as a WhatsApp message.
func SummaryText(title string, s *ledger.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *%s*\n\n", title)
	fmt.Fprintf(&b, "Entries: %d\n", s.Entries)
	fmt.Fprintf(&b, "Parcels: %d delivered, %d returned, %d RVP\n", s.Delivered, s.Returned, s.RVP)
	for _, a := range s.Areas {
		fmt.Fprintf(&b, "  • %s: %d delivered, %d returned\n", a.Area, a.Delivered, a.Returned)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "COD collected: %s\n", rupees(s.ActualCOD))
	fmt.Fprintf(&b, "COD shortage: %s\n", rupees(s.CODShortage))
	fmt.Fprintf(&b, "Remitted to company: %s\n", rupees(s.RemittedToCompany))
	fmt.Fprintf(&b, "*COD in hand: %s*\n\n", rupees(s.CODInHand))

	fmt.Fprintf(&b, "Advances: %s (on-spot %s, separate %s)\n",
		rupees(s.TotalAdvance), rupees(s.OnSpotAdvance), rupees(s.SeparateAdvance))
	fmt.Fprintf(&b, "Net payout to couriers: %s\n", rupees(s.NetPayout))
	fmt.Fprintf(&b, "Company earning: %s\n", rupees(s.CompanyEarning))
	fmt.Fprintf(&b, "Owner expense: %s\n", rupees(s.OwnerExpense))
	fmt.Fprintf(&b, "*Profit: %s*\n", rupees(s.Profit))

	if len(s.Couriers) > 0 {
		b.WriteString("\n*Couriers*\n")
		for _, c := range s.Couriers {
			fmt.Fprintf(&b, "%s: work %d, net %s, profit %s\n",
				c.CourierName, c.TotalWork, rupees(c.NetPayout), rupees(c.Profit))
		}
	}
	return b.String()
}

func rupees(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-₹" + d.Neg().StringFixed(2)
	}
	return "₹" + d.StringFixed(2)
}
