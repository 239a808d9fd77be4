package store

import (
	"context"
	"database/sql"
	"strings"

	"storefront-service/internal/models"
)

// GetDiscountByCode retrieves a discount code case-insensitively
func (s *Store) GetDiscountByCode(ctx context.Context, code string) (*models.DiscountCode, error) {
	var row models.DiscountCode
	err := s.db.GetContext(ctx, &row,
		"SELECT * FROM discount_codes WHERE code = $1", strings.ToUpper(code))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateDiscount inserts a discount code, upper-casing it
func (s *Store) CreateDiscount(ctx context.Context, d *models.DiscountCode) error {
	d.Code = strings.ToUpper(d.Code)

	query := `
		INSERT INTO discount_codes (code, percentage, valid_from, valid_until, usage_limit, min_purchase, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, used_count, created_at`

	return s.db.GetContext(ctx, d, query,
		d.Code, d.Percentage, d.ValidFrom, d.ValidUntil, d.UsageLimit, d.MinPurchase, d.IsActive)
}

// ListDiscounts retrieves all discount codes, newest first
func (s *Store) ListDiscounts(ctx context.Context) ([]models.DiscountCode, error) {
	var codes []models.DiscountCode
	err := s.db.SelectContext(ctx, &codes,
		"SELECT * FROM discount_codes ORDER BY created_at DESC")
	return codes, err
}

// RedeemDiscount bumps used_count with a single conditional update so
// concurrent redemptions cannot race past the usage limit. Returns false
// when the limit was already reached.
func (s *Store) RedeemDiscount(ctx context.Context, discountID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE discount_codes
		SET used_count = used_count + 1
		WHERE id = $1 AND (usage_limit IS NULL OR used_count < usage_limit)`,
		discountID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}
