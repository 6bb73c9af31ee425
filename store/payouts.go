package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mealcart/payouts/models"
)

// ErrNotFound is returned when a requested row does not exist (or is
// soft-deleted).
var ErrNotFound = errors.New("not found")

const payoutColumns = `id, restaurant_id, start_time, end_time, total_order_amount,
	transaction_charges, amount_paid_to_vendor, status, retry, transaction_id,
	transaction_details, payout_details, completed_marked_admin_id,
	payout_completed_time, is_deleted, created_at, updated_at`

// Payouts is the SQL-backed payout record store. Payout rows are never
// physically deleted; every read filters on is_deleted.
type Payouts struct {
	DB *sql.DB
}

func scanPayout(scanner interface{ Scan(...any) error }) (models.Payout, error) {
	var (
		p             models.Payout
		txnDetails    []byte
		payoutDetails []byte
		adminID       sql.NullString
		completedAt   sql.NullTime
	)
	err := scanner.Scan(&p.ID, &p.RestaurantID, &p.StartTime, &p.EndTime, &p.TotalOrderAmount,
		&p.TransactionCharges, &p.AmountPaidToVendor, &p.Status, &p.Retry, &p.TransactionID,
		&txnDetails, &payoutDetails, &adminID, &completedAt, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	if len(txnDetails) > 0 {
		p.TransactionDetails = json.RawMessage(txnDetails)
	}
	if len(payoutDetails) > 0 {
		var d models.PayoutDetails
		if err := json.Unmarshal(payoutDetails, &d); err != nil {
			return p, fmt.Errorf("decoding payout_details for %s: %w", p.ID, err)
		}
		p.PayoutDetails = &d
	}
	if adminID.Valid {
		p.CompletedMarkedAdminID = &adminID.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		p.PayoutCompletedTime = &t
	}
	return p, nil
}

// GetByID fetches a payout with its contributing orders attached.
func (s *Payouts) GetByID(ctx context.Context, id string) (*models.Payout, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+payoutColumns+` FROM payouts WHERE id = $1 AND is_deleted = FALSE`, id)
	p, err := scanPayout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.Orders, err = s.ordersFor(ctx, p.TransactionID); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByTransactionID looks a payout up by its gateway reference key.
func (s *Payouts) GetByTransactionID(ctx context.Context, transactionID string) (*models.Payout, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+payoutColumns+` FROM payouts WHERE transaction_id = $1 AND is_deleted = FALSE`, transactionID)
	p, err := scanPayout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// LatestForRestaurant returns the most recent payout period for a
// restaurant. The caller derives the next window's start from its end_time.
func (s *Payouts) LatestForRestaurant(ctx context.Context, restaurantID string) (*models.Payout, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+payoutColumns+` FROM payouts
		 WHERE restaurant_id = $1 AND is_deleted = FALSE
		 ORDER BY end_time DESC LIMIT 1`, restaurantID)
	p, err := scanPayout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListPending returns retry-enabled payouts awaiting settlement, oldest
// first so the balance admission walk is deterministic.
func (s *Payouts) ListPending(ctx context.Context) ([]models.Payout, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+payoutColumns+` FROM payouts
		 WHERE retry = TRUE AND status IN ('INIT', 'FAILED') AND is_deleted = FALSE
		 ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payouts []models.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}
	return payouts, rows.Err()
}

// CreateWithOrders inserts a payout row and tags every contributing order
// with its transaction id, atomically. Either both writes commit or neither.
func (s *Payouts) CreateWithOrders(ctx context.Context, p *models.Payout, orderIDs []int64) error {
	detailsJSON, err := json.Marshal(p.PayoutDetails)
	if err != nil {
		return fmt.Errorf("encoding payout_details: %w", err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO payouts (id, restaurant_id, start_time, end_time, total_order_amount,
			transaction_charges, amount_paid_to_vendor, status, retry, transaction_id, payout_details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.RestaurantID, p.StartTime, p.EndTime, p.TotalOrderAmount,
		p.TransactionCharges, p.AmountPaidToVendor, p.Status, p.Retry, p.TransactionID, detailsJSON)
	if err != nil {
		return fmt.Errorf("inserting payout %s: %w", p.ID, err)
	}

	if len(orderIDs) > 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE orders SET payout_transaction_id = $1 WHERE id = ANY($2)`,
			p.TransactionID, orderIDs)
		if err != nil {
			return fmt.Errorf("tagging orders for payout %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// Update persists the mutable settlement fields of a payout inside a
// transaction, so a partial write can never survive an error.
func (s *Payouts) Update(ctx context.Context, p *models.Payout) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE payouts SET status = $1, retry = $2, transaction_details = $3,
			completed_marked_admin_id = $4, payout_completed_time = $5,
			payout_details = $6, updated_at = NOW()
		 WHERE id = $7 AND is_deleted = FALSE`,
		p.Status, p.Retry, nullableJSON(p.TransactionDetails),
		p.CompletedMarkedAdminID, p.PayoutCompletedTime,
		mustJSON(p.PayoutDetails), p.ID)
	if err != nil {
		return fmt.Errorf("updating payout %s: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// SoftDelete hides a payout from all reads without dropping the row.
func (s *Payouts) SoftDelete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE payouts SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1 AND is_deleted = FALSE`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Filter returns the payouts matching f with their contributing orders, plus
// the total match count for pagination.
func (s *Payouts) Filter(ctx context.Context, f models.PayoutFilterInput) ([]models.Payout, int, error) {
	conditions := []string{"is_deleted = FALSE"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.RestaurantIDs) > 0 {
		conditions = append(conditions, "restaurant_id = ANY("+arg(f.RestaurantIDs)+")")
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			statuses[i] = string(st)
		}
		conditions = append(conditions, "status = ANY("+arg(statuses)+")")
	}
	if f.AmountMin != nil {
		conditions = append(conditions, "amount_paid_to_vendor >= "+arg(*f.AmountMin))
	}
	if f.AmountMax != nil {
		conditions = append(conditions, "amount_paid_to_vendor <= "+arg(*f.AmountMax))
	}
	if f.StartDate != nil {
		conditions = append(conditions, "start_time >= "+arg(*f.StartDate))
	}
	if f.EndDate != nil {
		conditions = append(conditions, "end_time <= "+arg(*f.EndDate))
	}
	if f.Retry != nil {
		conditions = append(conditions, "retry = "+arg(*f.Retry))
	}
	if f.AdminCompleted != nil {
		if *f.AdminCompleted {
			conditions = append(conditions, "completed_marked_admin_id IS NOT NULL")
		} else {
			conditions = append(conditions, "completed_marked_admin_id IS NULL")
		}
	}
	if f.Search != "" {
		ph := arg(f.Search + "%")
		conditions = append(conditions, "(id LIKE "+ph+" OR restaurant_id LIKE "+ph+")")
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM payouts"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := " ORDER BY created_at DESC"
	if f.SortOrder == "asc" {
		order = " ORDER BY created_at ASC"
	}
	limit := fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (f.Page-1)*f.PageSize)

	rows, err := s.DB.QueryContext(ctx, "SELECT "+payoutColumns+" FROM payouts"+where+order+limit, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payouts []models.Payout
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, 0, err
		}
		payouts = append(payouts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range payouts {
		if payouts[i].Orders, err = s.ordersFor(ctx, payouts[i].TransactionID); err != nil {
			return nil, 0, err
		}
	}
	if payouts == nil {
		payouts = []models.Payout{}
	}
	return payouts, total, nil
}

// SummaryForRestaurant aggregates a restaurant's payout history by status.
func (s *Payouts) SummaryForRestaurant(ctx context.Context, restaurantID string) (*models.PayoutSummary, error) {
	summary := &models.PayoutSummary{
		RestaurantID: restaurantID,
		ByStatus:     map[models.PayoutStatus]int{},
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(amount_paid_to_vendor), 0)
		 FROM payouts WHERE restaurant_id = $1 AND is_deleted = FALSE
		 GROUP BY status`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status models.PayoutStatus
			count  int
			sum    models.Money
		)
		if err := rows.Scan(&status, &count, &sum); err != nil {
			return nil, err
		}
		summary.ByStatus[status] = count
		summary.TotalPayouts += count
		if status == models.PayoutStatusComplete {
			summary.TotalPaid += sum
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	last, err := s.LatestForRestaurant(ctx, restaurantID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	summary.LastPayout = last
	return summary, nil
}

func (s *Payouts) ordersFor(ctx context.Context, transactionID string) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE payout_transaction_id = $1 ORDER BY order_placed_time ASC`,
		transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

func mustJSON(v *models.PayoutDetails) any {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		// PayoutDetails is a plain struct; marshalling cannot fail.
		panic(err)
	}
	return b
}
