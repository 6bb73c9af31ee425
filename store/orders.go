package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mealcart/payouts/models"
)

const orderColumns = `id, restaurant_id, order_status, refund_status, order_placed_time,
	vendor_payout_amount, refund_settled_vendor_payout_amount, payout_transaction_id, created_at`

// Orders reads the order projection the payout engine settles against. The
// order subsystem owns writes to these rows except payout_transaction_id.
type Orders struct {
	DB *sql.DB
}

func scanOrder(scanner interface{ Scan(...any) error }) (models.Order, error) {
	var (
		o            models.Order
		refundStatus sql.NullString
		refundAmount sql.NullInt64
		payoutTxnID  sql.NullString
	)
	err := scanner.Scan(&o.ID, &o.RestaurantID, &o.OrderStatus, &refundStatus, &o.OrderPlacedTime,
		&o.VendorPayoutAmount, &refundAmount, &payoutTxnID, &o.CreatedAt)
	if err != nil {
		return o, err
	}
	if refundStatus.Valid {
		rs := models.RefundStatus(refundStatus.String)
		o.RefundStatus = &rs
	}
	if refundAmount.Valid {
		m := models.Money(refundAmount.Int64)
		o.RefundSettledVendorPayoutAmount = &m
	}
	if payoutTxnID.Valid {
		o.PayoutTransactionID = &payoutTxnID.String
	}
	return o, nil
}

// InWindow returns a restaurant's orders placed in [start, end), oldest
// first. The generator walks this sequence to build the next payout.
func (s *Orders) InWindow(ctx context.Context, restaurantID string, start, end time.Time) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE restaurant_id = $1 AND order_placed_time >= $2 AND order_placed_time < $3
		 ORDER BY order_placed_time ASC`, restaurantID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ForPayout returns the orders settled by the given payout transaction.
func (s *Orders) ForPayout(ctx context.Context, transactionID string) ([]models.Order, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE payout_transaction_id = $1 ORDER BY order_placed_time ASC`, transactionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// List is the admin browse query. All filters are optional.
func (s *Orders) List(ctx context.Context, restaurantID string, from, to *time.Time, status string, limit int) ([]models.Order, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if restaurantID != "" {
		conditions = append(conditions, "restaurant_id = "+arg(restaurantID))
	}
	if from != nil {
		conditions = append(conditions, "order_placed_time >= "+arg(*from))
	}
	if to != nil {
		conditions = append(conditions, "order_placed_time < "+arg(*to))
	}
	if status != "" {
		conditions = append(conditions, "order_status = "+arg(status))
	}

	query := "SELECT " + orderColumns + " FROM orders"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY order_placed_time DESC"
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]models.Order, error) {
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
