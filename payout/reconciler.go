package payout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mealcart/payouts/gateway"
	"github.com/mealcart/payouts/models"
	"github.com/mealcart/payouts/store"
)

// Reconciler keeps payout rows in sync with the transfer gateway. Gateway
// failures are absorbed into FAILED status with a diagnostic payload;
// persistence failures after a gateway round-trip are escalated, because a
// lost status update risks an unrecorded money movement.
type Reconciler struct {
	Records RecordStore
	Gateway gateway.Transfers
}

// Settle initiates a transfer for the payout and applies the outcome. Used
// by the batch scheduler and by admin retry on INIT/FAILED payouts.
func (r *Reconciler) Settle(ctx context.Context, p *models.Payout) (*models.Payout, error) {
	if p.PayoutDetails == nil || p.PayoutDetails.BeneficiaryID == "" {
		p.Status = models.PayoutStatusFailed
		p.TransactionDetails = diagnostic("payout has no beneficiary on file", nil)
		return p, r.persist(ctx, p)
	}

	result, err := r.Gateway.InitiateTransfer(ctx, gateway.TransferRequest{
		ReferenceID:   p.TransactionID,
		BeneficiaryID: p.PayoutDetails.BeneficiaryID,
		Amount:        p.AmountPaidToVendor,
		Narration:     "payout " + p.RestaurantID,
	})
	if err != nil {
		slog.Error("transfer initiation failed", "payout_id", p.ID, "error", err)
		p.Status = models.PayoutStatusFailed
		p.TransactionDetails = diagnostic("transfer initiation failed", err)
		return p, r.persist(ctx, p)
	}

	r.apply(p, result.Status, result.Raw, result.CompletedAt)
	return p, r.persist(ctx, p)
}

// Reconcile polls the gateway for the payout's current transfer status and
// persists the transition. It never returns a gateway error; the payout is
// forced FAILED with the diagnostic instead.
func (r *Reconciler) Reconcile(ctx context.Context, p *models.Payout) (*models.Payout, error) {
	result, err := r.Gateway.TransferStatus(ctx, p.TransactionID)
	if err != nil {
		slog.Error("transfer status check failed", "payout_id", p.ID, "error", err)
		p.Status = models.PayoutStatusFailed
		p.TransactionDetails = diagnostic("transfer status check failed", err)
		return p, r.persist(ctx, p)
	}

	r.apply(p, result.Status, result.Raw, result.CompletedAt)
	return p, r.persist(ctx, p)
}

// ApplyGatewayEvent handles an async gateway notification. An event for an
// unknown transfer is logged and dropped; a matching payout is updated
// transactionally by the store.
func (r *Reconciler) ApplyGatewayEvent(ctx context.Context, event gateway.TransferEvent) error {
	reference := event.ReferenceID
	if reference == "" {
		reference = event.TransferID
	}

	p, err := r.Records.GetByTransactionID(ctx, reference)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.Warn("gateway event for unknown transfer, dropping",
				"transfer_id", event.TransferID, "reference_id", event.ReferenceID)
			return nil
		}
		return fmt.Errorf("looking up transfer %s: %w", reference, err)
	}

	r.apply(p, event.Status, event.Raw, event.CompletedAt)
	if err := r.Records.Update(ctx, p); err != nil {
		return fmt.Errorf("applying gateway event to payout %s: %w", p.ID, err)
	}
	slog.Info("gateway event applied", "payout_id", p.ID, "status", p.Status)
	return nil
}

// apply overwrites the payout's status and gateway payload. Completion time
// comes from the gateway, never the local clock, and is set exactly once.
func (r *Reconciler) apply(p *models.Payout, status models.PayoutStatus, raw json.RawMessage, completedAt *time.Time) {
	p.Status = status
	if len(raw) > 0 {
		p.TransactionDetails = raw
	}
	if status == models.PayoutStatusComplete && p.PayoutCompletedTime == nil && completedAt != nil {
		p.PayoutCompletedTime = completedAt
	}
}

func (r *Reconciler) persist(ctx context.Context, p *models.Payout) error {
	if err := r.Records.Update(ctx, p); err != nil {
		return fmt.Errorf("persisting payout %s (amount %s): %w", p.ID, p.AmountPaidToVendor, err)
	}
	return nil
}

func diagnostic(message string, err error) json.RawMessage {
	payload := map[string]string{"error": message}
	if err != nil {
		payload["detail"] = err.Error()
	}
	b, _ := json.Marshal(payload)
	return b
}
