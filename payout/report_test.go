package payout

import (
	"errors"
	"strings"
	"testing"

	"github.com/mealcart/payouts/models"
)

func TestCycleReportSubject(t *testing.T) {
	report := CycleReport{
		RanAt: mustTime("2026-08-10T03:00:00Z"),
		Outcomes: []SettlementOutcome{
			{Payout: pendingPayout("p1", 100)},
			{Payout: pendingPayout("p2", 80), Skipped: true, Reason: "over budget"},
		},
	}
	want := "Payout cycle report 2026-08-10 (2 payouts)"
	if got := report.Subject(); got != want {
		t.Errorf("Subject() = %q, want %q", got, want)
	}
}

func TestCycleReportHTML(t *testing.T) {
	settled := pendingPayout("p1", 9900)
	settled.Status = models.PayoutStatusComplete
	settled.PayoutDetails.RestaurantName = "Test Kitchen"

	report := CycleReport{
		RanAt:            mustTime("2026-08-10T03:00:00Z"),
		AvailableBalance: 500,
		Outcomes: []SettlementOutcome{
			{Payout: settled},
			{Payout: pendingPayout("p2", 80), Skipped: true, Reason: "over budget"},
			{Payout: pendingPayout("p3", 70), Err: errors.New("gateway down")},
		},
	}
	html := report.HTML()

	for _, want := range []string{
		"Test Kitchen",
		"2026-08-01 to 2026-08-08", // settlement window
		"COMPLETE",
		"SKIPPED: over budget",
		"ERROR: gateway down",
		"99.00",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q:\n%s", want, html)
		}
	}
}
