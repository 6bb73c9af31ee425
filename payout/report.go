package payout

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/mealcart/payouts/models"
)

// SettlementOutcome is one payout's result within a cycle: settled with a
// final status, failed with an error, or skipped by admission control.
type SettlementOutcome struct {
	Payout  models.Payout
	Err     error
	Skipped bool
	Reason  string
}

// CycleReport is the operator-facing summary of one settlement phase.
type CycleReport struct {
	RanAt            time.Time
	AvailableBalance models.Money
	Outcomes         []SettlementOutcome
}

// Subject renders the report email subject line.
func (r CycleReport) Subject() string {
	return fmt.Sprintf("Payout cycle report %s (%d payouts)",
		r.RanAt.Format("2006-01-02"), len(r.Outcomes))
}

// HTML renders the per-payout outcome table. The settlement-window duration
// column doubles as the interval since the restaurant's previous payout,
// since windows are contiguous per restaurant.
func (r CycleReport) HTML() string {
	var b strings.Builder
	b.WriteString("<h3>Payout cycle ")
	b.WriteString(r.RanAt.Format("2006-01-02 15:04 MST"))
	b.WriteString("</h3>")
	fmt.Fprintf(&b, "<p>Remaining available balance: %s</p>", r.AvailableBalance)

	b.WriteString("<table border=\"1\" cellpadding=\"4\"><tr>" +
		"<th>Restaurant</th><th>Payout</th><th>Amount</th>" +
		"<th>Window</th><th>Since Previous</th><th>Outcome</th></tr>")
	for _, o := range r.Outcomes {
		p := o.Payout
		name := p.RestaurantID
		if p.PayoutDetails != nil && p.PayoutDetails.RestaurantName != "" {
			name = p.PayoutDetails.RestaurantName
		}
		window := fmt.Sprintf("%s to %s",
			p.StartTime.Format("2006-01-02"), p.EndTime.Format("2006-01-02"))
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(name), html.EscapeString(p.ID), p.AmountPaidToVendor,
			window, formatInterval(p.EndTime.Sub(p.StartTime)), html.EscapeString(o.outcome()))
	}
	b.WriteString("</table>")
	return b.String()
}

func (o SettlementOutcome) outcome() string {
	switch {
	case o.Skipped:
		return "SKIPPED: " + o.Reason
	case o.Err != nil:
		return "ERROR: " + o.Err.Error()
	default:
		return string(o.Payout.Status)
	}
}

func formatInterval(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	return fmt.Sprintf("%dh", hours)
}

func lowBalanceAlertHTML(balance, available models.Money, pending int) string {
	return fmt.Sprintf("<h3>Payout settlement aborted</h3>"+
		"<p>Gateway balance %s leaves %s available after reserve, below the dispatch floor. "+
		"%d pending payouts were not attempted.</p>", balance, available, pending)
}
