package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mealcart/payouts/models"
)

const restaurantColumns = `id, name, image_url, status, hold_payout, is_deleted, created_at, updated_at`

const accountColumns = `id, restaurant_id, beneficiary_id, account_holder, account_number, ifsc,
	is_primary, is_deleted, created_at`

// Restaurants manages the restaurant roster and their payout accounts.
type Restaurants struct {
	DB *sql.DB
}

func scanRestaurant(scanner interface{ Scan(...any) error }) (models.Restaurant, error) {
	var (
		r        models.Restaurant
		imageURL sql.NullString
	)
	err := scanner.Scan(&r.ID, &r.Name, &imageURL, &r.Status, &r.HoldPayout,
		&r.IsDeleted, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return r, err
	}
	if imageURL.Valid {
		r.ImageURL = &imageURL.String
	}
	return r, nil
}

func scanAccount(scanner interface{ Scan(...any) error }) (models.PayoutAccount, error) {
	var a models.PayoutAccount
	err := scanner.Scan(&a.ID, &a.RestaurantID, &a.BeneficiaryID, &a.AccountHolder,
		&a.AccountNumber, &a.IFSC, &a.IsPrimary, &a.IsDeleted, &a.CreatedAt)
	return a, err
}

// GetByID fetches a restaurant that has not been soft-deleted.
func (s *Restaurants) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1 AND is_deleted = FALSE`, id)
	r, err := scanRestaurant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// List returns all live restaurants, newest first.
func (s *Restaurants) List(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE is_deleted = FALSE ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []models.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}
	if restaurants == nil {
		restaurants = []models.Restaurant{}
	}
	return restaurants, rows.Err()
}

// PayoutEligible returns every active restaurant that is not holding payouts
// and has a primary bank account with a registered beneficiary. These are the
// restaurants the scheduler walks each cycle.
func (s *Restaurants) PayoutEligible(ctx context.Context) ([]models.RestaurantEligibility, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT r.id, r.name, r.image_url, r.status, r.hold_payout, r.is_deleted, r.created_at, r.updated_at,
			a.id, a.restaurant_id, a.beneficiary_id, a.account_holder, a.account_number, a.ifsc,
			a.is_primary, a.is_deleted, a.created_at
		 FROM restaurants r
		 JOIN restaurant_payout_accounts a ON a.restaurant_id = r.id
		 WHERE r.status = 'active' AND r.hold_payout = FALSE AND r.is_deleted = FALSE
			AND a.is_primary = TRUE AND a.is_deleted = FALSE AND a.beneficiary_id <> ''
		 ORDER BY r.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eligible []models.RestaurantEligibility
	for rows.Next() {
		var (
			e        models.RestaurantEligibility
			imageURL sql.NullString
		)
		err := rows.Scan(&e.Restaurant.ID, &e.Restaurant.Name, &imageURL, &e.Restaurant.Status,
			&e.Restaurant.HoldPayout, &e.Restaurant.IsDeleted, &e.Restaurant.CreatedAt, &e.Restaurant.UpdatedAt,
			&e.Account.ID, &e.Account.RestaurantID, &e.Account.BeneficiaryID, &e.Account.AccountHolder,
			&e.Account.AccountNumber, &e.Account.IFSC, &e.Account.IsPrimary, &e.Account.IsDeleted,
			&e.Account.CreatedAt)
		if err != nil {
			return nil, err
		}
		if imageURL.Valid {
			e.Restaurant.ImageURL = &imageURL.String
		}
		eligible = append(eligible, e)
	}
	return eligible, rows.Err()
}

// Create inserts a restaurant and returns the stored row.
func (s *Restaurants) Create(ctx context.Context, in models.RestaurantInput) (*models.Restaurant, error) {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	var id string
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO restaurants (id, name, image_url, status, hold_payout)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		in.ID, in.Name, in.ImageURL, in.Status, in.HoldPayout).Scan(&id)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Update changes a restaurant's mutable fields and returns the stored row.
func (s *Restaurants) Update(ctx context.Context, id string, in models.RestaurantInput) (*models.Restaurant, error) {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE restaurants SET name = $1, image_url = $2, status = $3, hold_payout = $4, updated_at = NOW()
		 WHERE id = $5 AND is_deleted = FALSE`,
		in.Name, in.ImageURL, in.Status, in.HoldPayout, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// AddAccount registers a bank account for a restaurant. When the new account
// is primary, any previous primary is demoted in the same transaction.
func (s *Restaurants) AddAccount(ctx context.Context, in models.PayoutAccountInput) (*models.PayoutAccount, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if in.IsPrimary {
		_, err = tx.ExecContext(ctx,
			`UPDATE restaurant_payout_accounts SET is_primary = FALSE
			 WHERE restaurant_id = $1 AND is_primary = TRUE`, in.RestaurantID)
		if err != nil {
			return nil, err
		}
	}

	var id int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO restaurant_payout_accounts
			(restaurant_id, beneficiary_id, account_holder, account_number, ifsc, is_primary)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		in.RestaurantID, in.BeneficiaryID, in.AccountHolder, in.AccountNumber, in.IFSC, in.IsPrimary).Scan(&id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM restaurant_payout_accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// AccountsFor lists a restaurant's live bank accounts, primary first.
func (s *Restaurants) AccountsFor(ctx context.Context, restaurantID string) ([]models.PayoutAccount, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM restaurant_payout_accounts
		 WHERE restaurant_id = $1 AND is_deleted = FALSE
		 ORDER BY is_primary DESC, created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []models.PayoutAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if accounts == nil {
		accounts = []models.PayoutAccount{}
	}
	return accounts, rows.Err()
}
