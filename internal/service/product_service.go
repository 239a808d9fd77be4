package service

import (
	"context"
	"fmt"

	"storefront-service/config"
	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// ProductService handles admin product, image and size mutations
type ProductService struct {
	store  *store.Store
	redis  *redisclient.Client
	cfg    config.StoreConfig
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store *store.Store, redis *redisclient.Client, cfg config.StoreConfig) *ProductService {
	return &ProductService{
		store:  store,
		redis:  redis,
		cfg:    cfg,
		logger: util.GetLogger(),
	}
}

// ProductRequest carries admin product form input
type ProductRequest struct {
	BrandID            int64    `json:"brand_id" binding:"required"`
	Name               string   `json:"name" binding:"required"`
	Description        *string  `json:"description"`
	BasePrice          float64  `json:"base_price" binding:"required,gt=0"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	Gender             string   `json:"gender" binding:"required"`
	Category           string   `json:"category" binding:"required"`
	Condition          string   `json:"condition" binding:"required"`
	Status             string   `json:"status"`
	Featured           bool     `json:"featured"`
	SKU                *string  `json:"sku"`
}

func (s *ProductService) validateRequest(req *ProductRequest) error {
	if err := catalog.ValidateDiscountPercentage(req.DiscountPercentage); err != nil {
		return err
	}
	if !models.ValidGender(req.Gender) {
		return fmt.Errorf("invalid gender: %s", req.Gender)
	}
	if !models.ValidCategory(req.Category) {
		return fmt.Errorf("invalid category: %s", req.Category)
	}
	if !models.ValidCondition(req.Condition) {
		return fmt.Errorf("invalid condition: %s", req.Condition)
	}
	if req.Status != "" && !models.ValidStatus(req.Status) {
		return fmt.Errorf("invalid status: %s", req.Status)
	}
	return nil
}

// uniqueSlug derives a slug from the name and resolves collisions with a
// numeric suffix.
func (s *ProductService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := catalog.Slugify(name)
	if base == "" {
		return "", fmt.Errorf("name %q produces an empty slug", name)
	}

	slug := base
	for i := 2; ; i++ {
		taken, err := s.store.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// CreateProduct validates input, derives slug and final price, and inserts
// the product. Nothing is written when validation fails.
func (s *ProductService) CreateProduct(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.CreateProduct")
	defer span.End()

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ProductStatusDraft
	}

	product := &models.Product{
		BrandID:            req.BrandID,
		Name:               req.Name,
		Slug:               slug,
		Description:        req.Description,
		BasePrice:          req.BasePrice,
		DiscountPercentage: req.DiscountPercentage,
		FinalPrice:         catalog.FinalPrice(req.BasePrice, req.DiscountPercentage),
		Gender:             req.Gender,
		Category:           req.Category,
		Condition:          req.Condition,
		Status:             status,
		Featured:           req.Featured,
		SKU:                req.SKU,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.String("slug", product.Slug))
	return product, nil
}

// UpdateProduct applies admin edits. The slug is re-derived only when the
// name changed; final price is always recomputed.
func (s *ProductService) UpdateProduct(ctx context.Context, productID int64, req *ProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.UpdateProduct")
	defer span.End()

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product not found: %d", productID)
	}

	if req.Name != product.Name {
		slug, err := s.uniqueSlug(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		product.Slug = slug
	}

	product.BrandID = req.BrandID
	product.Name = req.Name
	product.Description = req.Description
	product.BasePrice = req.BasePrice
	product.DiscountPercentage = req.DiscountPercentage
	product.FinalPrice = catalog.FinalPrice(req.BasePrice, req.DiscountPercentage)
	product.Gender = req.Gender
	product.Category = req.Category
	product.Condition = req.Condition
	if req.Status != "" {
		product.Status = req.Status
	}
	product.Featured = req.Featured
	product.SKU = req.SKU

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// DeleteProduct removes a product with its images and sizes in one
// transaction, then drops any cached stock entries.
func (s *ProductService) DeleteProduct(ctx context.Context, productID int64) error {
	ctx, span := util.StartSpan(ctx, "ProductService.DeleteProduct")
	defer span.End()

	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("product not found: %d", productID)
	}

	if err := s.store.DeleteProductCascade(ctx, productID); err != nil {
		return err
	}

	for _, size := range product.Sizes {
		if err := s.redis.DropSizeStock(ctx, productID, size.Size); err != nil {
			s.logger.Warn("Failed to evict stock cache entry",
				zap.Int64("product_id", productID),
				zap.String("size", size.Size),
				zap.Error(err))
		}
	}

	s.logger.Info("Product deleted", zap.Int64("product_id", productID))
	return nil
}

// AddImage attaches an image to a product
func (s *ProductService) AddImage(ctx context.Context, img *models.ProductImage) error {
	return s.store.CreateProductImage(ctx, img)
}

// RemoveImage detaches an image
func (s *ProductService) RemoveImage(ctx context.Context, imageID int64) error {
	return s.store.DeleteProductImage(ctx, imageID)
}

// SetSizeStock writes per-size stock. is_available is recomputed from the
// written quantity, and the redis cache entry is refreshed.
func (s *ProductService) SetSizeStock(ctx context.Context, size *models.ProductSize) error {
	ctx, span := util.StartSpan(ctx, "ProductService.SetSizeStock")
	defer span.End()

	if size.StockQuantity < 0 {
		return fmt.Errorf("stock quantity must not be negative")
	}

	if err := s.store.UpsertProductSize(ctx, size); err != nil {
		return fmt.Errorf("failed to write size stock: %w", err)
	}

	if err := s.redis.InitSizeStock(ctx, size.ProductID, size.Size, size.StockQuantity); err != nil {
		s.logger.Warn("Failed to refresh stock cache",
			zap.Int64("product_id", size.ProductID),
			zap.String("size", size.Size),
			zap.Error(err))
	}

	return nil
}

// GetSize retrieves the stock row for a (product, size) pair
func (s *ProductService) GetSize(ctx context.Context, productID int64, size string) (*models.ProductSize, error) {
	return s.store.GetProductSize(ctx, productID, size)
}

// RemoveSize deletes a size row and its cache entry
func (s *ProductService) RemoveSize(ctx context.Context, size *models.ProductSize) error {
	if err := s.store.DeleteProductSize(ctx, size.ID); err != nil {
		return err
	}
	return s.redis.DropSizeStock(ctx, size.ProductID, size.Size)
}

// Dashboard aggregates admin landing page data
type Dashboard struct {
	StatusCounts []store.ProductStatusCount `json:"status_counts"`
	TopViewed    []models.Product           `json:"top_viewed"`
	LowStock     []store.LowStockRow        `json:"low_stock"`
}

// GetDashboard builds the admin dashboard aggregates
func (s *ProductService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.GetDashboard")
	defer span.End()

	counts, err := s.store.CountProductsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	top, err := s.store.TopViewedProducts(ctx, 10)
	if err != nil {
		return nil, err
	}

	low, err := s.store.ListLowStockSizes(ctx, s.cfg.LowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &Dashboard{StatusCounts: counts, TopViewed: top, LowStock: low}, nil
}

// ListSettings lists all site settings for the admin console
func (s *ProductService) ListSettings(ctx context.Context) ([]models.SiteSetting, error) {
	return s.store.ListSettings(ctx)
}

// UpdateSetting writes a site setting value
func (s *ProductService) UpdateSetting(ctx context.Context, key, value string) error {
	return s.store.UpsertSetting(ctx, key, value)
}
