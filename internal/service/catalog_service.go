package service

import (
	"context"
	"time"

	"storefront-service/config"
	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// CatalogStore is the data access surface catalog reads need
type CatalogStore interface {
	ListProducts(ctx context.Context, filter catalog.Filter) ([]models.Product, int64, error)
	GetProductBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Product, error)
	ListBrands(ctx context.Context) ([]models.Brand, error)
}

// CatalogService serves storefront product listings
type CatalogService struct {
	store  CatalogStore
	cfg    config.StoreConfig
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store CatalogStore, cfg config.StoreConfig) *CatalogService {
	return &CatalogService{
		store:  store,
		cfg:    cfg,
		logger: util.GetLogger(),
	}
}

// CatalogPage is one page of catalog results
type CatalogPage struct {
	Products   []models.Product `json:"data"`
	Count      int64            `json:"count"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// ListCatalog runs a filtered, sorted, paginated published-only query. A
// failed read degrades to an empty page with a logged error so the page
// always renders.
func (s *CatalogService) ListCatalog(ctx context.Context, filter catalog.Filter) *CatalogPage {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListCatalog")
	defer span.End()

	filter.IncludeAllStatuses = false
	filter.Normalize(s.cfg.CatalogPageSize)

	start := time.Now()
	products, count, err := s.store.ListProducts(ctx, filter)
	util.CatalogQueryLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		s.logger.Error("Catalog query failed, returning empty page",
			zap.String("search", filter.Search),
			zap.String("brand", filter.BrandSlug),
			zap.Error(err))
		return &CatalogPage{
			Products: []models.Product{},
			Page:     filter.Page,
			PageSize: filter.PageSize,
		}
	}

	return &CatalogPage{
		Products:   products,
		Count:      count,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: catalog.TotalPages(count, filter.PageSize),
	}
}

// ListFeatured returns the homepage grid of featured products
func (s *CatalogService) ListFeatured(ctx context.Context) *CatalogPage {
	featured := true
	return s.ListCatalog(ctx, catalog.Filter{
		Featured: &featured,
		PageSize: s.cfg.HomepagePageSize,
	})
}

// ListAdminProducts lists products across all statuses for the admin
// console. Admin reads do not degrade silently.
func (s *CatalogService) ListAdminProducts(ctx context.Context, filter catalog.Filter) (*CatalogPage, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.ListAdminProducts")
	defer span.End()

	filter.IncludeAllStatuses = true
	filter.Normalize(s.cfg.AdminPageSize)

	products, count, err := s.store.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &CatalogPage{
		Products:   products,
		Count:      count,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: catalog.TotalPages(count, filter.PageSize),
	}, nil
}

// GetPublishedProduct resolves a storefront product page. A nil product
// means not found (or not published).
func (s *CatalogService) GetPublishedProduct(ctx context.Context, slug string) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.GetPublishedProduct")
	defer span.End()

	return s.store.GetProductBySlug(ctx, slug, true)
}

// ListBrands lists all brands for the storefront filter bar
func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.store.ListBrands(ctx)
}
