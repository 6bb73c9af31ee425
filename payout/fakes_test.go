package payout

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mealcart/payouts/gateway"
	"github.com/mealcart/payouts/models"
	"github.com/mealcart/payouts/store"
)

type fakeRecords struct {
	mu      sync.Mutex
	byID    map[string]*models.Payout
	pending []models.Payout

	created   []*models.Payout
	taggedIDs [][]int64
	updates   int
	updateErr error
}

func newFakeRecords() *fakeRecords {
	return &fakeRecords{byID: map[string]*models.Payout{}}
}

func (f *fakeRecords) add(p models.Payout) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := p
	f.byID[p.ID] = &cp
}

func (f *fakeRecords) GetByID(_ context.Context, id string) (*models.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRecords) GetByTransactionID(_ context.Context, txnID string) (*models.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.TransactionID == txnID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeRecords) LatestForRestaurant(_ context.Context, restaurantID string) (*models.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.Payout
	for _, p := range f.byID {
		if p.RestaurantID != restaurantID {
			continue
		}
		if latest == nil || p.EndTime.After(latest.EndTime) {
			latest = p
		}
	}
	if latest == nil {
		return nil, store.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeRecords) ListPending(_ context.Context) ([]models.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Payout(nil), f.pending...), nil
}

func (f *fakeRecords) CreateWithOrders(_ context.Context, p *models.Payout, orderIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.byID[p.ID] = &cp
	f.created = append(f.created, &cp)
	f.taggedIDs = append(f.taggedIDs, orderIDs)
	return nil
}

func (f *fakeRecords) Update(_ context.Context, p *models.Payout) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[p.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

type fakeOrders struct {
	orders map[string][]models.Order
}

func (f *fakeOrders) InWindow(_ context.Context, restaurantID string, start, end time.Time) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders[restaurantID] {
		if !o.OrderPlacedTime.Before(start) && o.OrderPlacedTime.Before(end) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeRestaurants struct {
	eligible []models.RestaurantEligibility
}

func (f *fakeRestaurants) PayoutEligible(context.Context) ([]models.RestaurantEligibility, error) {
	return f.eligible, nil
}

type fakeGateway struct {
	mu        sync.Mutex
	balance   models.Money
	balErr    error
	initErr   error
	statusErr error

	initiated []gateway.TransferRequest
	result    *gateway.TransferResult
}

func (f *fakeGateway) InitiateTransfer(_ context.Context, req gateway.TransferRequest) (*gateway.TransferResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.initErr != nil {
		return nil, f.initErr
	}
	f.initiated = append(f.initiated, req)
	if f.result != nil {
		return f.result, nil
	}
	return &gateway.TransferResult{
		TransferID: "tr_" + req.ReferenceID,
		Status:     models.PayoutStatusPending,
		Raw:        json.RawMessage(`{"status":"processing"}`),
	}, nil
}

func (f *fakeGateway) TransferStatus(_ context.Context, transferID string) (*gateway.TransferResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	if f.result != nil {
		return f.result, nil
	}
	return &gateway.TransferResult{
		TransferID: transferID,
		Status:     models.PayoutStatusPending,
		Raw:        json.RawMessage(`{"status":"processing"}`),
	}, nil
}

func (f *fakeGateway) Balance(context.Context) (models.Money, error) {
	if f.balErr != nil {
		return 0, f.balErr
	}
	return f.balance, nil
}

func (f *fakeGateway) initiatedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.initiated)
}

type fakeNotifier struct {
	mu       sync.Mutex
	subjects []string
	bodies   []string
	err      error
}

func (f *fakeNotifier) SendOperationalReport(_ context.Context, subject, html string, _ []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, html)
	return nil
}

func mustTime(t string) time.Time {
	parsed, err := time.Parse(time.RFC3339, t)
	if err != nil {
		panic(err)
	}
	return parsed
}

func moneyPtr(m models.Money) *models.Money { return &m }

func refundPtr(s models.RefundStatus) *models.RefundStatus { return &s }
