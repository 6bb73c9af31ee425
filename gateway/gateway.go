// Package gateway adapts an external money-transfer provider to the payout
// engine. The engine only ever sees the Transfers interface; the concrete
// provider lives behind it.
package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mealcart/payouts/models"
)

// TransferRequest asks the provider to move money to a beneficiary.
// ReferenceID is our payout transaction id and is echoed back by the
// provider, which is how webhooks find their payout.
type TransferRequest struct {
	ReferenceID   string
	BeneficiaryID string
	Amount        models.Money
	Currency      string
	Narration     string
}

// TransferResult is the provider's view of one transfer, normalized to our
// status vocabulary. Raw carries the provider's full response for auditing.
type TransferResult struct {
	TransferID  string
	Status      models.PayoutStatus
	CompletedAt *time.Time
	Raw         json.RawMessage
}

// TransferEvent is a provider webhook notification about a transfer.
type TransferEvent struct {
	TransferID  string
	ReferenceID string
	Status      models.PayoutStatus
	CompletedAt *time.Time
	Raw         json.RawMessage
}

// Transfers is the provider surface the settlement engine depends on.
type Transfers interface {
	// InitiateTransfer starts a payout to the beneficiary. A non-nil result
	// with a FAILED status is a provider-side rejection, not a transport
	// error.
	InitiateTransfer(ctx context.Context, req TransferRequest) (*TransferResult, error)

	// TransferStatus fetches the current provider state of a transfer.
	TransferStatus(ctx context.Context, transferID string) (*TransferResult, error)

	// Balance returns the spendable balance of the funding account.
	Balance(ctx context.Context) (models.Money, error)
}
