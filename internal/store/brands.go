package store

import (
	"context"
	"database/sql"
	"fmt"

	"storefront-service/internal/models"
)

// ListBrands retrieves all brands ordered by name
func (s *Store) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	err := s.db.SelectContext(ctx, &brands, "SELECT * FROM brands ORDER BY name ASC")
	return brands, err
}

// GetBrandByID retrieves a brand by ID
func (s *Store) GetBrandByID(ctx context.Context, id int64) (*models.Brand, error) {
	var brand models.Brand
	err := s.db.GetContext(ctx, &brand, "SELECT * FROM brands WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// GetBrandBySlug retrieves a brand by slug
func (s *Store) GetBrandBySlug(ctx context.Context, slug string) (*models.Brand, error) {
	var brand models.Brand
	err := s.db.GetContext(ctx, &brand, "SELECT * FROM brands WHERE slug = $1", slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// BrandSlugExists reports whether a brand slug is already taken
func (s *Store) BrandSlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM brands WHERE slug = $1)", slug)
	return exists, err
}

// CreateBrand inserts a brand row. Name and slug are unique.
func (s *Store) CreateBrand(ctx context.Context, brand *models.Brand) error {
	query := `
		INSERT INTO brands (name, slug, logo_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return s.db.GetContext(ctx, brand, query, brand.Name, brand.Slug, brand.LogoURL)
}

// UpdateBrand updates a brand row
func (s *Store) UpdateBrand(ctx context.Context, brand *models.Brand) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE brands SET name = $1, slug = $2, logo_url = $3 WHERE id = $4",
		brand.Name, brand.Slug, brand.LogoURL, brand.ID)
	return err
}

// DeleteBrand removes a brand. Fails while products still reference it.
func (s *Store) DeleteBrand(ctx context.Context, brandID int64) error {
	var inUse bool
	err := s.db.GetContext(ctx, &inUse,
		"SELECT EXISTS(SELECT 1 FROM products WHERE brand_id = $1)", brandID)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("brand %d still has products", brandID)
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM brands WHERE id = $1", brandID)
	return err
}
