package models

import "time"

// Restaurant is the vendor identity this service settles money to.
type Restaurant struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ImageURL   *string   `json:"image_url,omitempty"`
	Status     string    `json:"status"` // active, inactive
	HoldPayout bool      `json:"hold_payout"`
	IsDeleted  bool      `json:"is_deleted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RestaurantInput is used for creating/updating restaurants.
type RestaurantInput struct {
	ID         string  `json:"id"` // optional; generated when empty
	Name       string  `json:"name"`
	ImageURL   *string `json:"image_url"`
	Status     string  `json:"status"`
	HoldPayout bool    `json:"hold_payout"`
}

func (r *RestaurantInput) Validate() string {
	if r.Name == "" {
		return "name is required"
	}
	switch r.Status {
	case "", "active", "inactive":
	default:
		return "status must be one of: active, inactive"
	}
	if r.Status == "" {
		r.Status = "active"
	}
	return ""
}

// PayoutAccount is a bank beneficiary a restaurant's payouts go to. Only the
// primary non-deleted account is used for settlement.
type PayoutAccount struct {
	ID            int       `json:"id"`
	RestaurantID  string    `json:"restaurant_id"`
	BeneficiaryID string    `json:"beneficiary_id"`
	AccountHolder string    `json:"account_holder"`
	AccountNumber string    `json:"account_number"`
	IFSC          string    `json:"ifsc"`
	IsPrimary     bool      `json:"is_primary"`
	IsDeleted     bool      `json:"is_deleted"`
	CreatedAt     time.Time `json:"created_at"`
}

// PayoutAccountInput is used for registering a restaurant's payout account.
type PayoutAccountInput struct {
	RestaurantID  string `json:"-"` // taken from the URL, not the body
	BeneficiaryID string `json:"beneficiary_id"`
	AccountHolder string `json:"account_holder"`
	AccountNumber string `json:"account_number"`
	IFSC          string `json:"ifsc"`
	IsPrimary     bool   `json:"is_primary"`
}

func (a *PayoutAccountInput) Validate() string {
	if a.BeneficiaryID == "" {
		return "beneficiary_id is required"
	}
	if a.AccountHolder == "" {
		return "account_holder is required"
	}
	if a.AccountNumber == "" {
		return "account_number is required"
	}
	if a.IFSC == "" {
		return "ifsc is required"
	}
	return ""
}

// RestaurantEligibility pairs a restaurant with its primary payout account
// for the batch scheduler's generation phase.
type RestaurantEligibility struct {
	Restaurant Restaurant    `json:"restaurant"`
	Account    PayoutAccount `json:"account"`
}
