package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"storefront-service/internal/catalog"
	"storefront-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// ListProducts translates a catalog filter into a single paginated read plus
// a total count. Rows come back hydrated with brand, images and sizes.
func (s *Store) ListProducts(ctx context.Context, filter catalog.Filter) ([]models.Product, int64, error) {
	conds := []string{"p.final_price >= ?", "p.final_price <= ?"}
	args := []interface{}{filter.MinPrice, filter.MaxPrice}

	if !filter.IncludeAllStatuses {
		conds = append(conds, "p.status = ?")
		args = append(args, models.ProductStatusPublished)
	} else if filter.Status != "" {
		conds = append(conds, "p.status = ?")
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		conds = append(conds, "p.name ILIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.BrandSlug != "" {
		conds = append(conds, "b.slug = ?")
		args = append(args, filter.BrandSlug)
	}
	if filter.Gender != "" {
		conds = append(conds, "p.gender = ?")
		args = append(args, filter.Gender)
	}
	if filter.Category != "" {
		conds = append(conds, "p.category = ?")
		args = append(args, filter.Category)
	}
	if filter.Featured != nil {
		conds = append(conds, "p.featured = ?")
		args = append(args, *filter.Featured)
	}

	where := "WHERE " + strings.Join(conds, " AND ")

	var count int64
	countQuery := s.db.Rebind(
		"SELECT COUNT(*) FROM products p JOIN brands b ON b.id = p.brand_id " + where)
	if err := s.db.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	listQuery := s.db.Rebind(fmt.Sprintf(
		"SELECT p.* FROM products p JOIN brands b ON b.id = p.brand_id %s ORDER BY %s LIMIT ? OFFSET ?",
		where, orderClause(filter.Sort)))
	args = append(args, filter.PageSize, filter.Offset())

	var products []models.Product
	if err := s.db.SelectContext(ctx, &products, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	if err := s.hydrateProducts(ctx, products); err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func orderClause(sort string) string {
	switch sort {
	case catalog.SortPriceAsc:
		return "p.final_price ASC"
	case catalog.SortPriceDesc:
		return "p.final_price DESC"
	case catalog.SortName:
		return "p.name ASC"
	case catalog.SortPopular:
		return "p.view_count DESC"
	default:
		return "p.created_at DESC"
	}
}

// hydrateProducts attaches brand, images and sizes to each product row
func (s *Store) hydrateProducts(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	productIDs := make([]int64, len(products))
	brandIDs := make([]int64, 0, len(products))
	seenBrands := make(map[int64]bool)
	for i, p := range products {
		productIDs[i] = p.ID
		if !seenBrands[p.BrandID] {
			seenBrands[p.BrandID] = true
			brandIDs = append(brandIDs, p.BrandID)
		}
	}

	query, args, err := sqlx.In("SELECT * FROM brands WHERE id IN (?)", brandIDs)
	if err != nil {
		return err
	}
	var brands []models.Brand
	if err := s.db.SelectContext(ctx, &brands, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load brands: %w", err)
	}
	brandByID := make(map[int64]*models.Brand, len(brands))
	for i := range brands {
		brandByID[brands[i].ID] = &brands[i]
	}

	query, args, err = sqlx.In(
		"SELECT * FROM product_images WHERE product_id IN (?) ORDER BY display_order ASC", productIDs)
	if err != nil {
		return err
	}
	var images []models.ProductImage
	if err := s.db.SelectContext(ctx, &images, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load product images: %w", err)
	}

	query, args, err = sqlx.In(
		"SELECT * FROM product_sizes WHERE product_id IN (?) ORDER BY size ASC", productIDs)
	if err != nil {
		return err
	}
	var sizes []models.ProductSize
	if err := s.db.SelectContext(ctx, &sizes, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load product sizes: %w", err)
	}

	imagesByProduct := make(map[int64][]models.ProductImage)
	for _, img := range images {
		imagesByProduct[img.ProductID] = append(imagesByProduct[img.ProductID], img)
	}
	sizesByProduct := make(map[int64][]models.ProductSize)
	for _, sz := range sizes {
		sizesByProduct[sz.ProductID] = append(sizesByProduct[sz.ProductID], sz)
	}

	for i := range products {
		products[i].Brand = brandByID[products[i].BrandID]
		products[i].Images = imagesByProduct[products[i].ID]
		products[i].MainImage = models.MainImage(products[i].Images)
		products[i].Sizes = sizesByProduct[products[i].ID]
	}

	return nil
}

// GetProductByID retrieves a product by ID, hydrated
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows := []models.Product{product}
	if err := s.hydrateProducts(ctx, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// GetProductBySlug retrieves a product by slug, hydrated. When
// publishedOnly is set, draft/sold-out/archived products are invisible.
func (s *Store) GetProductBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Product, error) {
	query := "SELECT * FROM products WHERE slug = $1"
	args := []interface{}{slug}
	if publishedOnly {
		query += " AND status = $2"
		args = append(args, models.ProductStatusPublished)
	}

	var product models.Product
	err := s.db.GetContext(ctx, &product, query, args...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows := []models.Product{product}
	if err := s.hydrateProducts(ctx, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// SlugExists reports whether a product slug is already taken
func (s *Store) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM products WHERE slug = $1)", slug)
	return exists, err
}

// CreateProduct inserts a product row
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (brand_id, name, slug, description, base_price, discount_percentage,
			final_price, gender, category, condition, status, featured, sku)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, view_count, whatsapp_clicks, created_at, updated_at`

	return s.db.GetContext(ctx, p, query,
		p.BrandID, p.Name, p.Slug, p.Description, p.BasePrice, p.DiscountPercentage,
		p.FinalPrice, p.Gender, p.Category, p.Condition, p.Status, p.Featured, p.SKU)
}

// UpdateProduct updates all mutable product fields
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET brand_id = $1, name = $2, slug = $3, description = $4, base_price = $5,
			discount_percentage = $6, final_price = $7, gender = $8, category = $9,
			condition = $10, status = $11, featured = $12, sku = $13, updated_at = NOW()
		WHERE id = $14`,
		p.BrandID, p.Name, p.Slug, p.Description, p.BasePrice, p.DiscountPercentage,
		p.FinalPrice, p.Gender, p.Category, p.Condition, p.Status, p.Featured, p.SKU, p.ID)
	return err
}

// DeleteProductCascade deletes a product together with its images and sizes
// in one transaction, so referential cleanup does not depend on schema-level
// cascade rules.
func (s *Store) DeleteProductCascade(ctx context.Context, productID int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM product_images WHERE product_id = $1", productID); err != nil {
		return fmt.Errorf("failed to delete product images: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM product_sizes WHERE product_id = $1", productID); err != nil {
		return fmt.Errorf("failed to delete product sizes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM products WHERE id = $1", productID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return tx.Commit()
}

// IncrementViewCount bumps the product view counter atomically
func (s *Store) IncrementViewCount(ctx context.Context, productID int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE products SET view_count = view_count + 1 WHERE id = $1", productID)
	return err
}

// IncrementWhatsAppClicks bumps the contact-link click counter atomically
func (s *Store) IncrementWhatsAppClicks(ctx context.Context, productID int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE products SET whatsapp_clicks = whatsapp_clicks + 1 WHERE id = $1", productID)
	return err
}

// CreateProductImage inserts an image row
func (s *Store) CreateProductImage(ctx context.Context, img *models.ProductImage) error {
	query := `
		INSERT INTO product_images (product_id, image_url, display_order)
		VALUES ($1, $2, $3)
		RETURNING id`

	return s.db.GetContext(ctx, &img.ID, query, img.ProductID, img.ImageURL, img.DisplayOrder)
}

// DeleteProductImage removes an image row
func (s *Store) DeleteProductImage(ctx context.Context, imageID int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM product_images WHERE id = $1", imageID)
	return err
}

// UpsertProductSize creates or replaces the stock row for a size. The
// is_available flag is always recomputed from the written quantity.
func (s *Store) UpsertProductSize(ctx context.Context, size *models.ProductSize) error {
	query := `
		INSERT INTO product_sizes (product_id, size, stock_quantity, is_available)
		VALUES ($1, $2, $3, $3 > 0)
		ON CONFLICT (product_id, size)
		DO UPDATE SET stock_quantity = $3, is_available = $3 > 0
		RETURNING id, is_available`

	return s.db.GetContext(ctx, size, query, size.ProductID, size.Size, size.StockQuantity)
}

// GetProductSize retrieves the stock row for a (product, size) pair
func (s *Store) GetProductSize(ctx context.Context, productID int64, size string) (*models.ProductSize, error) {
	var row models.ProductSize
	err := s.db.GetContext(ctx, &row,
		"SELECT * FROM product_sizes WHERE product_id = $1 AND size = $2", productID, size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteProductSize removes a size row
func (s *Store) DeleteProductSize(ctx context.Context, sizeID int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM product_sizes WHERE id = $1", sizeID)
	return err
}
