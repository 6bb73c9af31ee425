package payout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mealcart/payouts/gateway"
	"github.com/mealcart/payouts/models"
	"github.com/mealcart/payouts/store"
)

// Scheduler runs the periodic payout cycle: generate new payout periods for
// every eligible restaurant, then settle pending payouts against the gateway
// balance.
type Scheduler struct {
	Records     RecordStore
	Orders      OrderSource
	Restaurants RestaurantSource
	Gateway     gateway.Transfers
	Notifier    Notifier
	Config      Config

	reconciler *Reconciler
	once       sync.Once
}

func (s *Scheduler) recon() *Reconciler {
	s.once.Do(func() {
		s.reconciler = &Reconciler{Records: s.Records, Gateway: s.Gateway}
	})
	return s.reconciler
}

// RunPayoutCycle executes one full generation + settlement pass. A
// balance-exhaustion condition aborts the settlement phase after alerting
// operators; a report delivery failure aborts the cycle.
func (s *Scheduler) RunPayoutCycle(ctx context.Context) error {
	now := s.Config.now()
	slog.Info("payout cycle started", "at", now)

	if err := s.generatePayouts(ctx, now); err != nil {
		return err
	}
	return s.settlePayouts(ctx, now)
}

// generatePayouts is Phase A: one new payout period per eligible restaurant,
// processed sequentially so each restaurant's atomic create finishes before
// the next begins.
func (s *Scheduler) generatePayouts(ctx context.Context, now time.Time) error {
	eligible, err := s.Restaurants.PayoutEligible(ctx)
	if err != nil {
		return fmt.Errorf("listing eligible restaurants: %w", err)
	}

	generator := &Generator{Orders: s.Orders, ChargeBP: s.Config.TransactionChargeBP}
	created := 0

	for _, e := range eligible {
		start, err := s.windowStart(ctx, e.Restaurant)
		if err != nil {
			return err
		}
		end := now.AddDate(0, 0, -s.Config.BufferDays)
		if end.Before(start) {
			end = now
		}

		draft, contributing, err := generator.BuildUpcoming(ctx, e.Restaurant.ID, start, end)
		if err != nil {
			return err
		}
		if draft.AmountPaidToVendor <= 0 {
			slog.Info("skipping zero-amount draft", "restaurant_id", e.Restaurant.ID)
			continue
		}

		draft.PayoutDetails = snapshotDetails(e)
		orderIDs := make([]int64, len(contributing))
		for i, o := range contributing {
			orderIDs[i] = o.ID
		}
		if err := s.Records.CreateWithOrders(ctx, draft, orderIDs); err != nil {
			return fmt.Errorf("creating payout for restaurant %s: %w", e.Restaurant.ID, err)
		}
		created++
		slog.Info("payout created", "payout_id", draft.ID, "restaurant_id", e.Restaurant.ID,
			"amount", draft.AmountPaidToVendor, "orders", len(contributing))
	}

	slog.Info("generation phase complete", "restaurants", len(eligible), "created", created)
	return nil
}

// windowStart is the previous payout's end, or the day-start of the
// restaurant's creation when no payout exists yet. Deriving start from the
// previous end keeps periods contiguous and non-overlapping.
func (s *Scheduler) windowStart(ctx context.Context, r models.Restaurant) (time.Time, error) {
	latest, err := s.Records.LatestForRestaurant(ctx, r.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c := r.CreatedAt.UTC()
			return time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		return time.Time{}, fmt.Errorf("finding latest payout for restaurant %s: %w", r.ID, err)
	}
	return latest.EndTime, nil
}

// settlePayouts is Phase B: a sequential balance-admission walk over pending
// payouts, then concurrent dispatch of the admitted set. Individual
// settlement failures never cancel siblings.
func (s *Scheduler) settlePayouts(ctx context.Context, now time.Time) error {
	pending, err := s.Records.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("listing pending payouts: %w", err)
	}

	balance, err := s.Gateway.Balance(ctx)
	if err != nil {
		return fmt.Errorf("fetching gateway balance: %w", err)
	}
	available := balance - s.Config.MinimumReserve

	if available < s.Config.DispatchFloor {
		slog.Error("settlement aborted, balance below dispatch floor",
			"balance", balance, "available", available, "pending", len(pending))
		alert := lowBalanceAlertHTML(balance, available, len(pending))
		if err := s.Notifier.SendOperationalReport(ctx, "Payout settlement aborted: low balance",
			alert, s.Config.ReportRecipients); err != nil {
			return fmt.Errorf("sending low-balance alert: %w", err)
		}
		return fmt.Errorf("available balance %s below floor %s: %w",
			available, s.Config.DispatchFloor, ErrBalanceExhausted)
	}

	// Admission is sequential so balance exhaustion is deterministic over a
	// fixed pending snapshot. The counter is not re-checked after dispatch;
	// the reserve absorbs that slack.
	var admitted []models.Payout
	outcomes := make([]SettlementOutcome, 0, len(pending))
	for _, p := range pending {
		if p.AmountPaidToVendor > available {
			slog.Warn("payout skipped, exceeds remaining balance",
				"payout_id", p.ID, "amount", p.AmountPaidToVendor, "available", available)
			outcomes = append(outcomes, SettlementOutcome{
				Payout:  p,
				Skipped: true,
				Reason:  fmt.Sprintf("amount %s exceeds remaining balance %s", p.AmountPaidToVendor, available),
			})
			continue
		}
		available -= p.AmountPaidToVendor
		admitted = append(admitted, p)
	}

	// Dispatch the admitted set concurrently and join on all of them; each
	// slot collects its own outcome.
	dispatched := make([]SettlementOutcome, len(admitted))
	var wg sync.WaitGroup
	for i := range admitted {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := admitted[i]
			settled, err := s.recon().Settle(ctx, &p)
			dispatched[i] = SettlementOutcome{Payout: *settled, Err: err}
		}(i)
	}
	wg.Wait()
	outcomes = append(outcomes, dispatched...)

	report := CycleReport{
		RanAt:            now,
		AvailableBalance: available,
		Outcomes:         outcomes,
	}
	slog.Info("settlement phase complete", "attempted", len(admitted),
		"skipped", len(outcomes)-len(admitted))

	// Report delivery is not isolated: a notifier failure aborts the cycle.
	if err := s.Notifier.SendOperationalReport(ctx, report.Subject(), report.HTML(),
		s.Config.ReportRecipients); err != nil {
		return fmt.Errorf("sending cycle report: %w", err)
	}

	for _, o := range outcomes {
		if o.Err != nil {
			return fmt.Errorf("payout cycle finished with settlement errors, first: %w", o.Err)
		}
	}
	return nil
}

func snapshotDetails(e models.RestaurantEligibility) *models.PayoutDetails {
	details := &models.PayoutDetails{
		RestaurantID:   e.Restaurant.ID,
		RestaurantName: e.Restaurant.Name,
		BeneficiaryID:  e.Account.BeneficiaryID,
		AccountHolder:  e.Account.AccountHolder,
		AccountNumber:  e.Account.AccountNumber,
		IFSC:           e.Account.IFSC,
	}
	if e.Restaurant.ImageURL != nil {
		details.RestaurantImage = *e.Restaurant.ImageURL
	}
	return details
}
