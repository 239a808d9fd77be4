package service

import (
	"context"
	"fmt"

	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// BrandService handles admin brand mutations
type BrandService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewBrandService creates a new brand service
func NewBrandService(store *store.Store) *BrandService {
	return &BrandService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// BrandRequest carries admin brand form input
type BrandRequest struct {
	Name    string  `json:"name" binding:"required"`
	LogoURL *string `json:"logo_url"`
}

// CreateBrand inserts a brand with a derived unique slug
func (s *BrandService) CreateBrand(ctx context.Context, req *BrandRequest) (*models.Brand, error) {
	slug := catalog.Slugify(req.Name)
	if slug == "" {
		return nil, fmt.Errorf("name %q produces an empty slug", req.Name)
	}

	taken, err := s.store.BrandSlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("brand slug already exists: %s", slug)
	}

	brand := &models.Brand{Name: req.Name, Slug: slug, LogoURL: req.LogoURL}
	if err := s.store.CreateBrand(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	s.logger.Info("Brand created", zap.Int64("brand_id", brand.ID), zap.String("slug", brand.Slug))
	return brand, nil
}

// UpdateBrand applies admin edits, re-deriving the slug from the name
func (s *BrandService) UpdateBrand(ctx context.Context, brandID int64, req *BrandRequest) (*models.Brand, error) {
	brand, err := s.store.GetBrandByID(ctx, brandID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, fmt.Errorf("brand not found: %d", brandID)
	}

	if req.Name != brand.Name {
		slug := catalog.Slugify(req.Name)
		taken, err := s.store.BrandSlugExists(ctx, slug)
		if err != nil {
			return nil, err
		}
		if taken && slug != brand.Slug {
			return nil, fmt.Errorf("brand slug already exists: %s", slug)
		}
		brand.Slug = slug
	}

	brand.Name = req.Name
	brand.LogoURL = req.LogoURL

	if err := s.store.UpdateBrand(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	return brand, nil
}

// DeleteBrand removes a brand that no product references
func (s *BrandService) DeleteBrand(ctx context.Context, brandID int64) error {
	if err := s.store.DeleteBrand(ctx, brandID); err != nil {
		return err
	}
	s.logger.Info("Brand deleted", zap.Int64("brand_id", brandID))
	return nil
}
