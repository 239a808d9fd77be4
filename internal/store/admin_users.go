package store

import (
	"context"
	"database/sql"

	"storefront-service/internal/models"
)

// GetAdminUserByID retrieves an admin user
func (s *Store) GetAdminUserByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	var user models.AdminUser
	err := s.db.GetContext(ctx, &user, "SELECT * FROM admin_users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAdminUserByEmail retrieves an admin user by email. A nil result means
// the identity has no admin-area access.
func (s *Store) GetAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := s.db.GetContext(ctx, &user, "SELECT * FROM admin_users WHERE email = $1", email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAdminUsers retrieves all admin users
func (s *Store) ListAdminUsers(ctx context.Context) ([]models.AdminUser, error) {
	var users []models.AdminUser
	err := s.db.SelectContext(ctx, &users, "SELECT * FROM admin_users ORDER BY email ASC")
	return users, err
}

// CreateAdminUser inserts an admin user row
func (s *Store) CreateAdminUser(ctx context.Context, user *models.AdminUser) error {
	query := `
		INSERT INTO admin_users (email, full_name, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, user, query, user.Email, user.FullName, user.Role)
}

// DeleteAdminUser removes an admin user
func (s *Store) DeleteAdminUser(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM admin_users WHERE id = $1", id)
	return err
}
