package store

import (
	"context"

	"storefront-service/internal/models"
)

// InsertProductView appends a view log row
func (s *Store) InsertProductView(ctx context.Context, productID int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO product_views (product_id) VALUES ($1)", productID)
	return err
}

// InsertAnalyticsEvent appends an event log row
func (s *Store) InsertAnalyticsEvent(ctx context.Context, productID int64, eventType string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO analytics_events (product_id, event_type) VALUES ($1, $2)",
		productID, eventType)
	return err
}

// ProductStatusCount is a dashboard aggregate row
type ProductStatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int64  `db:"count" json:"count"`
}

// CountProductsByStatus returns product counts grouped by status
func (s *Store) CountProductsByStatus(ctx context.Context) ([]ProductStatusCount, error) {
	var counts []ProductStatusCount
	err := s.db.SelectContext(ctx, &counts,
		"SELECT status, COUNT(*) AS count FROM products GROUP BY status")
	return counts, err
}

// TopViewedProducts returns the most viewed products for the dashboard
func (s *Store) TopViewedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products ORDER BY view_count DESC LIMIT $1", limit)
	return products, err
}

// LowStockRow surfaces sizes that are running out on the admin dashboard
type LowStockRow struct {
	ProductID     int64  `db:"product_id" json:"product_id"`
	ProductName   string `db:"product_name" json:"product_name"`
	Size          string `db:"size" json:"size"`
	StockQuantity int    `db:"stock_quantity" json:"stock_quantity"`
}

// ListLowStockSizes returns sizes with 0 < stock < threshold
func (s *Store) ListLowStockSizes(ctx context.Context, threshold int) ([]LowStockRow, error) {
	var rows []LowStockRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT ps.product_id, p.name AS product_name, ps.size, ps.stock_quantity
		FROM product_sizes ps
		JOIN products p ON p.id = ps.product_id
		WHERE ps.stock_quantity > 0 AND ps.stock_quantity < $1
		ORDER BY ps.stock_quantity ASC`, threshold)
	return rows, err
}
