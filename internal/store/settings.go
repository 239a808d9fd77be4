package store

import (
	"context"
	"database/sql"

	"storefront-service/internal/models"
)

// GetSetting retrieves a site setting value; fallback is returned when the
// key is absent.
func (s *Store) GetSetting(ctx context.Context, key, fallback string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value,
		"SELECT value FROM site_settings WHERE key = $1", key)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return fallback, err
	}
	return value, nil
}

// ListSettings retrieves all site settings
func (s *Store) ListSettings(ctx context.Context) ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	err := s.db.SelectContext(ctx, &settings, "SELECT * FROM site_settings ORDER BY key ASC")
	return settings, err
}

// UpsertSetting writes a site setting value
func (s *Store) UpsertSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO site_settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value)
	return err
}
