// Package payout implements payout generation, scheduled batch settlement,
// gateway reconciliation and the admin override operations. All collaborators
// come in through small interfaces so the engine carries no ambient state.
package payout

import (
	"context"
	"errors"
	"time"

	"github.com/mealcart/payouts/models"
)

var (
	// ErrConflict marks an admin operation rejected by the payout's current
	// state, such as retrying a COMPLETE payout.
	ErrConflict = errors.New("state conflict")

	// ErrBalanceExhausted aborts a settlement phase when the gateway balance
	// minus the reserve is below the dispatch floor.
	ErrBalanceExhausted = errors.New("gateway balance exhausted")
)

// RecordStore is the payout persistence surface the engine drives.
type RecordStore interface {
	GetByID(ctx context.Context, id string) (*models.Payout, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*models.Payout, error)
	LatestForRestaurant(ctx context.Context, restaurantID string) (*models.Payout, error)
	ListPending(ctx context.Context) ([]models.Payout, error)
	CreateWithOrders(ctx context.Context, p *models.Payout, orderIDs []int64) error
	Update(ctx context.Context, p *models.Payout) error
}

// OrderSource reads the order projection a payout window settles.
type OrderSource interface {
	InWindow(ctx context.Context, restaurantID string, start, end time.Time) ([]models.Order, error)
}

// RestaurantSource yields the restaurants a cycle generates payouts for.
type RestaurantSource interface {
	PayoutEligible(ctx context.Context) ([]models.RestaurantEligibility, error)
}

// Notifier delivers cycle reports and low-balance alerts to operators.
type Notifier interface {
	SendOperationalReport(ctx context.Context, subject, html string, recipients []string) error
}

// Config carries the settlement tuning knobs. Tests inject Now to pin time.
type Config struct {
	// BufferDays keeps orders still inside the refund grace window out of the
	// generated payout period.
	BufferDays int

	// MinimumReserve is withheld from the gateway balance before admission.
	MinimumReserve models.Money

	// DispatchFloor is the smallest available balance worth dispatching; below
	// it the whole settlement phase aborts.
	DispatchFloor models.Money

	// TransactionChargeBP is the platform charge in basis points of the total
	// order amount (100 = 1%).
	TransactionChargeBP int

	ReportRecipients []string

	// Now supplies the current time; defaults to time.Now in UTC.
	Now func() time.Time
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now().UTC()
}
