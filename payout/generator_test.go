package payout

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mealcart/payouts/models"
)

const restaurant = "rest-1"

func window() (time.Time, time.Time) {
	return mustTime("2026-08-01T00:00:00Z"), mustTime("2026-08-08T00:00:00Z")
}

func completedOrder(id int64, placed string, amount models.Money) models.Order {
	return models.Order{
		ID:                 id,
		RestaurantID:       restaurant,
		OrderStatus:        models.OrderStatusCompleted,
		OrderPlacedTime:    mustTime(placed),
		VendorPayoutAmount: amount,
	}
}

func newGenerator(orders ...models.Order) *Generator {
	return &Generator{
		Orders:   &fakeOrders{orders: map[string][]models.Order{restaurant: orders}},
		ChargeBP: 100,
	}
}

func TestBuildUpcomingAmounts(t *testing.T) {
	start, end := window()
	cancelled := models.Order{
		ID:              2,
		RestaurantID:    restaurant,
		OrderStatus:     models.OrderStatusCancelled,
		OrderPlacedTime: mustTime("2026-08-02T12:00:00Z"),
		// nominal amount present but must not contribute
		VendorPayoutAmount: 5000,
	}
	g := newGenerator(completedOrder(1, "2026-08-02T10:00:00Z", 10000), cancelled)

	draft, contributing, err := g.BuildUpcoming(context.Background(), restaurant, start, end)
	if err != nil {
		t.Fatalf("BuildUpcoming: %v", err)
	}

	if draft.TotalOrderAmount != 10000 {
		t.Errorf("total = %d, want 10000", draft.TotalOrderAmount)
	}
	if draft.TransactionCharges != 100 {
		t.Errorf("charges = %d, want 100", draft.TransactionCharges)
	}
	if draft.AmountPaidToVendor != 9900 {
		t.Errorf("vendor amount = %d, want 9900", draft.AmountPaidToVendor)
	}
	if got := draft.TransactionCharges + draft.AmountPaidToVendor; got != draft.TotalOrderAmount {
		t.Errorf("charges + vendor = %d, want total %d", got, draft.TotalOrderAmount)
	}
	if len(contributing) != 2 {
		t.Fatalf("contributing orders = %d, want 2 (cancelled order rides along)", len(contributing))
	}
	if draft.Status != models.PayoutStatusInit || !draft.Retry {
		t.Errorf("draft should start INIT with retry enabled, got %s retry=%v", draft.Status, draft.Retry)
	}
	if !draft.EndTime.Equal(end) {
		t.Errorf("end_time = %v, want window end %v", draft.EndTime, end)
	}
}

func TestBuildUpcomingRefundAdjustedAmounts(t *testing.T) {
	start, end := window()
	completed := completedOrder(1, "2026-08-02T10:00:00Z", 10000)
	settled := models.RefundSettled
	completed.RefundStatus = &settled
	completed.RefundSettledVendorPayoutAmount = moneyPtr(4000)

	cancelledWithRefund := models.Order{
		ID:                              2,
		RestaurantID:                    restaurant,
		OrderStatus:                     models.OrderStatusCancelled,
		RefundStatus:                    refundPtr(models.RefundSettled),
		OrderPlacedTime:                 mustTime("2026-08-03T10:00:00Z"),
		VendorPayoutAmount:              8000,
		RefundSettledVendorPayoutAmount: moneyPtr(1500),
	}
	g := newGenerator(completed, cancelledWithRefund)

	draft, _, err := g.BuildUpcoming(context.Background(), restaurant, start, end)
	if err != nil {
		t.Fatalf("BuildUpcoming: %v", err)
	}
	if draft.TotalOrderAmount != 5500 {
		t.Errorf("total = %d, want 5500 (refund-adjusted amounts)", draft.TotalOrderAmount)
	}
}

func TestBuildUpcomingPendingRefundTruncatesWindow(t *testing.T) {
	start, end := window()
	blocked := models.Order{
		ID:                 2,
		RestaurantID:       restaurant,
		OrderStatus:        models.OrderStatusCompleted,
		RefundStatus:       refundPtr(models.RefundApprovalPending),
		OrderPlacedTime:    mustTime("2026-08-04T09:00:00Z"),
		VendorPayoutAmount: 7000,
	}
	g := newGenerator(
		completedOrder(1, "2026-08-02T10:00:00Z", 10000),
		blocked,
		completedOrder(3, "2026-08-05T10:00:00Z", 3000),
	)

	draft, contributing, err := g.BuildUpcoming(context.Background(), restaurant, start, end)
	if err != nil {
		t.Fatalf("BuildUpcoming: %v", err)
	}

	if !draft.EndTime.Equal(blocked.OrderPlacedTime) {
		t.Errorf("end_time = %v, want truncation at %v", draft.EndTime, blocked.OrderPlacedTime)
	}
	if draft.TotalOrderAmount != 10000 {
		t.Errorf("total = %d, want 10000 (orders at/after truncation excluded)", draft.TotalOrderAmount)
	}
	if len(contributing) != 1 || contributing[0].ID != 1 {
		t.Fatalf("contributing = %v, want only order 1", contributing)
	}
}

func TestBuildUpcomingFirstOrderPendingRefundClampsToStart(t *testing.T) {
	start, end := window()
	blocked := models.Order{
		ID:              1,
		RestaurantID:    restaurant,
		OrderStatus:     models.OrderStatusCompleted,
		RefundStatus:    refundPtr(models.RefundApprovalPending),
		OrderPlacedTime: mustTime("2026-08-02T10:00:00Z"),
	}
	g := newGenerator(blocked, completedOrder(2, "2026-08-03T10:00:00Z", 5000))

	draft, contributing, err := g.BuildUpcoming(context.Background(), restaurant, start, end)
	if err != nil {
		t.Fatalf("BuildUpcoming: %v", err)
	}
	if !draft.EndTime.Equal(start) {
		t.Errorf("end_time = %v, want clamp to window start %v", draft.EndTime, start)
	}
	if draft.TotalOrderAmount != 0 || len(contributing) != 0 {
		t.Errorf("got total=%d orders=%d, want empty draft", draft.TotalOrderAmount, len(contributing))
	}
}

func TestBuildUpcomingOtherStatusesRideAlong(t *testing.T) {
	start, end := window()
	preparing := models.Order{
		ID:                 1,
		RestaurantID:       restaurant,
		OrderStatus:        models.OrderStatusPreparing,
		OrderPlacedTime:    mustTime("2026-08-02T10:00:00Z"),
		VendorPayoutAmount: 9999,
	}
	g := newGenerator(preparing)

	draft, contributing, err := g.BuildUpcoming(context.Background(), restaurant, start, end)
	if err != nil {
		t.Fatalf("BuildUpcoming: %v", err)
	}
	if draft.TotalOrderAmount != 0 {
		t.Errorf("total = %d, want 0 for non-terminal order", draft.TotalOrderAmount)
	}
	if len(contributing) != 1 {
		t.Errorf("contributing = %d, want the order included without amount", len(contributing))
	}
}

func TestBuildUpcomingZeroOrders(t *testing.T) {
	start, end := window()
	g := newGenerator()

	draft, contributing, err := g.BuildUpcoming(context.Background(), restaurant, start, end)
	if err != nil {
		t.Fatalf("BuildUpcoming: %v", err)
	}
	if draft.TotalOrderAmount != 0 || draft.AmountPaidToVendor != 0 || len(contributing) != 0 {
		t.Errorf("want zero-amount draft, got total=%d vendor=%d orders=%d",
			draft.TotalOrderAmount, draft.AmountPaidToVendor, len(contributing))
	}
}

func TestBuildUpcomingIdempotentAmounts(t *testing.T) {
	start, end := window()
	g := newGenerator(completedOrder(1, "2026-08-02T10:00:00Z", 12345))

	first, _, err := g.BuildUpcoming(context.Background(), restaurant, start, end)
	if err != nil {
		t.Fatal(err)
	}
	second, _, err := g.BuildUpcoming(context.Background(), restaurant, start, end)
	if err != nil {
		t.Fatal(err)
	}

	if first.TotalOrderAmount != second.TotalOrderAmount ||
		first.AmountPaidToVendor != second.AmountPaidToVendor {
		t.Errorf("amounts differ between runs: %+v vs %+v", first, second)
	}
	if first.ID == second.ID || first.TransactionID == second.TransactionID {
		t.Errorf("ids must be fresh per run")
	}
}

func TestTransactionID(t *testing.T) {
	id := "6f1d9f7a-1111-2222-3333-444455556666"
	got := TransactionID(id)
	if !strings.HasPrefix(got, "pout_") {
		t.Errorf("transaction id %q missing prefix", got)
	}
	if strings.Contains(got, "-") {
		t.Errorf("transaction id %q should have dashes stripped", got)
	}
}

func TestCharges(t *testing.T) {
	tests := []struct {
		name  string
		total models.Money
		bp    int
		want  models.Money
	}{
		{"one percent exact", 10000, 100, 100},
		{"rounds half up", 150, 100, 2},
		{"rounds down below half", 149, 100, 1},
		{"zero total", 0, 100, 0},
		{"negative clamps", -500, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Charges(tt.total, tt.bp); got != tt.want {
				t.Errorf("Charges(%d, %d) = %d, want %d", tt.total, tt.bp, got, tt.want)
			}
		})
	}
}
