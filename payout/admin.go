package payout

import (
	"context"
	"fmt"

	"github.com/mealcart/payouts/models"
)

// Admin implements the manual override operations. Every operation re-reads
// the payout and rejects state conflicts with ErrConflict.
type Admin struct {
	Records    RecordStore
	Reconciler *Reconciler
}

// MarkComplete forces a payout COMPLETE with caller-supplied transaction
// details and completion time, recording which admin did it. The only path
// where completion time is not gateway-supplied.
func (a *Admin) MarkComplete(ctx context.Context, id, adminID string, in models.MarkCompleteInput) (*models.Payout, error) {
	p, err := a.Records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == models.PayoutStatusComplete {
		return nil, fmt.Errorf("payout %s is already complete: %w", id, ErrConflict)
	}

	p.Status = models.PayoutStatusComplete
	p.TransactionDetails = in.TransactionDetails
	completed := in.CompletedTime
	p.PayoutCompletedTime = &completed
	p.CompletedMarkedAdminID = &adminID
	if in.Remark != "" && p.PayoutDetails != nil {
		p.PayoutDetails.Remark = in.Remark
	}

	if err := a.Records.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("marking payout %s complete: %w", id, err)
	}
	return p, nil
}

// StopRetry removes a payout from automatic settlement. Status is untouched.
func (a *Admin) StopRetry(ctx context.Context, id string) (*models.Payout, error) {
	p, err := a.Records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == models.PayoutStatusComplete {
		return nil, fmt.Errorf("payout %s is already complete: %w", id, ErrConflict)
	}
	if !p.Retry {
		return nil, fmt.Errorf("retry already stopped for payout %s: %w", id, ErrConflict)
	}

	p.Retry = false
	if err := a.Records.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("stopping retry for payout %s: %w", id, err)
	}
	return p, nil
}

// Retry re-drives settlement for one payout on demand. PENDING payouts are
// re-reconciled in case an update was missed; INIT and FAILED payouts get a
// fresh transfer attempt. Terminal gateway states are conflicts.
func (a *Admin) Retry(ctx context.Context, id string) (*models.Payout, error) {
	p, err := a.Records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch p.Status {
	case models.PayoutStatusComplete:
		return nil, fmt.Errorf("payout %s is already complete: %w", id, ErrConflict)
	case models.PayoutStatusPending:
		return a.Reconciler.Reconcile(ctx, p)
	case models.PayoutStatusInit, models.PayoutStatusFailed:
		return a.Reconciler.Settle(ctx, p)
	case models.PayoutStatusRejected, models.PayoutStatusReversed:
		return nil, fmt.Errorf("payout %s was %s by the gateway and needs manual review: %w",
			id, p.Status, ErrConflict)
	default:
		return nil, fmt.Errorf("payout %s has unknown status %q: %w", id, p.Status, ErrConflict)
	}
}
