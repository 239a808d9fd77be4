package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-service/internal/models"
)

// ErrInsufficientStock is returned when a hold is requested against a size
// whose stock is already exhausted. The reservation row is never written.
var ErrInsufficientStock = errors.New("insufficient stock")

// CreateReservationTx places a stock hold: it locks the size row, refuses to
// go below zero, decrements the stock and writes the reservation row in a
// single transaction.
func (s *Store) CreateReservationTx(ctx context.Context, res *models.Reservation) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var stock int
	err = tx.GetContext(ctx, &stock,
		"SELECT stock_quantity FROM product_sizes WHERE product_id = $1 AND size = $2 FOR UPDATE",
		res.ProductID, res.Size)
	if err == sql.ErrNoRows {
		return fmt.Errorf("size %s not found for product %d", res.Size, res.ProductID)
	}
	if err != nil {
		return fmt.Errorf("failed to lock size row: %w", err)
	}

	if stock < 1 {
		return ErrInsufficientStock
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE product_sizes
		SET stock_quantity = stock_quantity - 1,
			is_available = stock_quantity - 1 > 0
		WHERE product_id = $1 AND size = $2`,
		res.ProductID, res.Size)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	err = tx.GetContext(ctx, res, `
		INSERT INTO reservations (product_id, size, customer_name, customer_email, customer_phone, expires_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		res.ProductID, res.Size, res.CustomerName, res.CustomerEmail,
		res.CustomerPhone, res.ExpiresAt, res.Status)
	if err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	return tx.Commit()
}

// ReleaseReservationTx moves a pending reservation to the given terminal
// status and returns its unit of stock, atomically. The released row is
// returned so callers can evict caches and publish events without a second
// read; a nil row means the reservation was not pending (already released or
// confirmed).
func (s *Store) ReleaseReservationTx(ctx context.Context, reservationID int64, toStatus string) (*models.Reservation, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var res models.Reservation
	err = tx.GetContext(ctx, &res,
		"SELECT * FROM reservations WHERE id = $1 FOR UPDATE", reservationID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("reservation not found: %d", reservationID)
	}
	if err != nil {
		return nil, err
	}

	if res.Status != models.ReservationStatusPending {
		return nil, nil
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE reservations SET status = $1 WHERE id = $2", toStatus, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE product_sizes
		SET stock_quantity = stock_quantity + 1, is_available = TRUE
		WHERE product_id = $1 AND size = $2`,
		res.ProductID, res.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to restore stock: %w", err)
	}

	res.Status = toStatus
	return &res, tx.Commit()
}

// ConfirmReservation marks a pending reservation confirmed. The stock stays
// deducted; the hold becomes a sale.
func (s *Store) ConfirmReservation(ctx context.Context, reservationID int64) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE reservations SET status = $1 WHERE id = $2 AND status = $3",
		models.ReservationStatusConfirmed, reservationID, models.ReservationStatusPending)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

// GetReservationByID retrieves a reservation
func (s *Store) GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error) {
	var res models.Reservation
	err := s.db.GetContext(ctx, &res, "SELECT * FROM reservations WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListReservations retrieves reservations, optionally filtered by status
func (s *Store) ListReservations(ctx context.Context, status string, limit, offset int) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if status != "" {
		err := s.db.SelectContext(ctx, &reservations,
			"SELECT * FROM reservations WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
			status, limit, offset)
		return reservations, err
	}
	err := s.db.SelectContext(ctx, &reservations,
		"SELECT * FROM reservations ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	return reservations, err
}

// ListLapsedReservations retrieves pending reservations whose hold window
// has passed, for the expiry worker.
func (s *Store) ListLapsedReservations(ctx context.Context, limit int) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := s.db.SelectContext(ctx, &reservations, `
		SELECT * FROM reservations
		WHERE status = $1 AND expires_at < NOW()
		ORDER BY expires_at ASC
		LIMIT $2`,
		models.ReservationStatusPending, limit)
	return reservations, err
}
