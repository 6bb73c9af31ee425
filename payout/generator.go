package payout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mealcart/payouts/models"
)

// Generator builds a draft payout for one restaurant over one window. It is
// pure over the fetched orders; persisting the draft is the caller's job.
type Generator struct {
	Orders   OrderSource
	ChargeBP int
}

// BuildUpcoming aggregates the restaurant's orders placed in [start, end)
// into a draft payout plus its contributing orders.
//
// The walk runs in placement order. An order whose refund is still awaiting
// approval truncates the window at its placement time: it and everything
// after it are deferred to the next payout. Completed orders contribute
// their refund-adjusted amount when a refund settled, otherwise the nominal
// vendor amount. Cancelled orders contribute only a settled refund amount.
// Orders in any other state ride along in the contributing set without
// adding money.
func (g *Generator) BuildUpcoming(ctx context.Context, restaurantID string, start, end time.Time) (*models.Payout, []models.Order, error) {
	orders, err := g.Orders.InWindow(ctx, restaurantID, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching orders for restaurant %s: %w", restaurantID, err)
	}

	var total models.Money
	var contributing []models.Order
	windowEnd := end

	for i, o := range orders {
		if o.RefundPending() {
			windowEnd = o.OrderPlacedTime
			if i == 0 {
				windowEnd = start
			}
			break
		}
		switch o.OrderStatus {
		case models.OrderStatusCompleted:
			if o.RefundSettledVendorPayoutAmount != nil {
				total += *o.RefundSettledVendorPayoutAmount
			} else {
				total += o.VendorPayoutAmount
			}
		case models.OrderStatusCancelled:
			if o.RefundSettledVendorPayoutAmount != nil {
				total += *o.RefundSettledVendorPayoutAmount
			}
		}
		contributing = append(contributing, o)
	}

	charges := Charges(total, g.ChargeBP)
	id := uuid.NewString()

	draft := &models.Payout{
		ID:                 id,
		RestaurantID:       restaurantID,
		StartTime:          start,
		EndTime:            windowEnd,
		TotalOrderAmount:   total,
		TransactionCharges: charges,
		AmountPaidToVendor: total - charges,
		Status:             models.PayoutStatusInit,
		Retry:              true,
		TransactionID:      TransactionID(id),
	}
	return draft, contributing, nil
}

// Charges computes the platform charge at the given basis-point rate,
// rounded half-up, so charges + vendor amount always equals the total
// exactly.
func Charges(total models.Money, basisPoints int) models.Money {
	if total <= 0 {
		return 0
	}
	return (total*models.Money(basisPoints) + 5000) / 10000
}

// TransactionID derives the gateway reference key from a payout id. It is
// deterministic so a re-generated draft for an already-initiated transfer
// stays traceable.
func TransactionID(payoutID string) string {
	return "pout_" + strings.ReplaceAll(payoutID, "-", "")
}
