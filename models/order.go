package models

import "time"

// OrderStatus is the lifecycle state of an order as the order subsystem
// reports it. Only terminal states contribute money to a payout.
type OrderStatus string

const (
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
)

// RefundStatus tracks a refund attached to an order. An order whose refund is
// still APPROVAL_PENDING cannot be settled and truncates the payout window.
type RefundStatus string

const (
	RefundApprovalPending RefundStatus = "approval_pending"
	RefundApproved        RefundStatus = "approved"
	RefundSettled         RefundStatus = "settled"
	RefundRejected        RefundStatus = "rejected"
)

// Order is the read-only projection of an order the payout engine consumes.
// The order subsystem owns these rows; this service only reads them and tags
// them with the payout that settled them.
type Order struct {
	ID                              int64         `json:"id"`
	RestaurantID                    string        `json:"restaurant_id"`
	OrderStatus                     OrderStatus   `json:"order_status"`
	RefundStatus                    *RefundStatus `json:"refund_status,omitempty"`
	OrderPlacedTime                 time.Time     `json:"order_placed_time"`
	VendorPayoutAmount              Money         `json:"vendor_payout_amount"`
	RefundSettledVendorPayoutAmount *Money        `json:"refund_settled_vendor_payout_amount,omitempty"`
	PayoutTransactionID             *string       `json:"payout_transaction_id,omitempty"`
	CreatedAt                       time.Time     `json:"created_at"`
}

// RefundPending reports whether the order has a refund awaiting approval.
func (o *Order) RefundPending() bool {
	return o.RefundStatus != nil && *o.RefundStatus == RefundApprovalPending
}
