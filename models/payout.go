package models

import (
	"encoding/json"
	"time"
)

// PayoutStatus is the settlement state of a payout. REJECTED and REVERSED
// only ever arrive from the transfer gateway; the service itself moves
// payouts between INIT, PENDING, FAILED and COMPLETE.
type PayoutStatus string

const (
	PayoutStatusInit     PayoutStatus = "INIT"
	PayoutStatusPending  PayoutStatus = "PENDING"
	PayoutStatusFailed   PayoutStatus = "FAILED"
	PayoutStatusComplete PayoutStatus = "COMPLETE"
	PayoutStatusRejected PayoutStatus = "REJECTED"
	PayoutStatusReversed PayoutStatus = "REVERSED"
)

// Valid reports whether s is a known payout status.
func (s PayoutStatus) Valid() bool {
	switch s {
	case PayoutStatusInit, PayoutStatusPending, PayoutStatusFailed,
		PayoutStatusComplete, PayoutStatusRejected, PayoutStatusReversed:
		return true
	}
	return false
}

// Payout represents one settlement period for one restaurant. The window is
// half-open: [StartTime, EndTime), and EndTime becomes the next payout's
// StartTime so periods stay contiguous per restaurant.
type Payout struct {
	ID                     string          `json:"id"`
	RestaurantID           string          `json:"restaurant_id"`
	StartTime              time.Time       `json:"start_time"`
	EndTime                time.Time       `json:"end_time"`
	TotalOrderAmount       Money           `json:"total_order_amount"`
	TransactionCharges     Money           `json:"transaction_charges"`
	AmountPaidToVendor     Money           `json:"amount_paid_to_vendor"`
	Status                 PayoutStatus    `json:"status"`
	Retry                  bool            `json:"retry"`
	TransactionID          string          `json:"transaction_id"`
	TransactionDetails     json.RawMessage `json:"transaction_details,omitempty"`
	PayoutDetails          *PayoutDetails  `json:"payout_details,omitempty"`
	CompletedMarkedAdminID *string         `json:"completed_marked_admin_id,omitempty"`
	PayoutCompletedTime    *time.Time      `json:"payout_completed_time,omitempty"`
	IsDeleted              bool            `json:"is_deleted"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
	// Computed fields
	Orders []Order `json:"orders,omitempty"` // contributing orders for the window
}

// PayoutDetails is the denormalized restaurant/account snapshot frozen onto
// the payout at creation time, so later account edits don't change where a
// settled period was paid.
type PayoutDetails struct {
	RestaurantID    string `json:"restaurant_id"`
	RestaurantName  string `json:"restaurant_name"`
	RestaurantImage string `json:"restaurant_image,omitempty"`
	BeneficiaryID   string `json:"beneficiary_id"`
	AccountHolder   string `json:"account_holder"`
	AccountNumber   string `json:"account_number"`
	IFSC            string `json:"ifsc"`
	Remark          string `json:"remark,omitempty"` // free-form vendor remark set by admins
}

// PayoutFilterInput is the admin/vendor filter request body.
type PayoutFilterInput struct {
	RestaurantIDs  []string       `json:"restaurant_ids"`
	Statuses       []PayoutStatus `json:"statuses"`
	AmountMin      *Money         `json:"amount_min"`
	AmountMax      *Money         `json:"amount_max"`
	StartDate      *time.Time     `json:"start_date"`
	EndDate        *time.Time     `json:"end_date"`
	Retry          *bool          `json:"retry"`
	AdminCompleted *bool          `json:"admin_completed"`
	Search         string         `json:"search"`
	SortOrder      string         `json:"sort_order"` // asc or desc on created_at
	Page           int            `json:"page"`
	PageSize       int            `json:"page_size"`
	CSV            bool           `json:"csv"` // stream the result as a CSV attachment
}

func (f *PayoutFilterInput) Validate() string {
	for _, s := range f.Statuses {
		if !s.Valid() {
			return "statuses contains an unknown payout status: " + string(s)
		}
	}
	if f.AmountMin != nil && *f.AmountMin < 0 {
		return "amount_min must be non-negative"
	}
	if f.AmountMin != nil && f.AmountMax != nil && *f.AmountMax < *f.AmountMin {
		return "amount_max must not be less than amount_min"
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return "end_date must not be before start_date"
	}
	switch f.SortOrder {
	case "", "asc", "desc":
	default:
		return "sort_order must be asc or desc"
	}
	if f.SortOrder == "" {
		f.SortOrder = "desc"
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 || f.PageSize > 200 {
		f.PageSize = 25
	}
	return ""
}

// MarkCompleteInput is the admin request to force a payout COMPLETE. This is
// the one path where completion time is caller-supplied rather than
// gateway-supplied.
type MarkCompleteInput struct {
	TransactionDetails json.RawMessage `json:"transaction_details"`
	CompletedTime      time.Time       `json:"completed_time"`
	Remark             string          `json:"remark"`
}

func (m *MarkCompleteInput) Validate() string {
	if len(m.TransactionDetails) == 0 {
		return "transaction_details is required"
	}
	if !json.Valid(m.TransactionDetails) {
		return "transaction_details must be valid JSON"
	}
	if m.CompletedTime.IsZero() {
		return "completed_time is required"
	}
	return ""
}

// PayoutSummary aggregates a restaurant's payouts by status for the vendor
// dashboard.
type PayoutSummary struct {
	RestaurantID string               `json:"restaurant_id"`
	TotalPayouts int                  `json:"total_payouts"`
	TotalPaid    Money                `json:"total_paid"`
	ByStatus     map[PayoutStatus]int `json:"by_status"`
	LastPayout   *Payout              `json:"last_payout,omitempty"`
}
