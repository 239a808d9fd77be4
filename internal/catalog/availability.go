package catalog

import "storefront-service/internal/models"

// Stock levels surfaced on the admin dashboard
const (
	StockLevelOut = "out_of_stock"
	StockLevelLow = "low_stock"
	StockLevelIn  = "in_stock"
)

// DefaultLowStockThreshold flags sizes with fewer remaining units
const DefaultLowStockThreshold = 3

// IsAvailable reports whether a size can be reserved
func IsAvailable(size models.ProductSize) bool {
	return size.StockQuantity > 0
}

// HasStock reports whether at least one size is available
func HasStock(sizes []models.ProductSize) bool {
	for _, s := range sizes {
		if IsAvailable(s) {
			return true
		}
	}
	return false
}

// StockLevel classifies a size's remaining stock against the threshold
func StockLevel(quantity, lowThreshold int) string {
	switch {
	case quantity <= 0:
		return StockLevelOut
	case quantity < lowThreshold:
		return StockLevelLow
	default:
		return StockLevelIn
	}
}

// AvailableSizes filters the sizes that still have stock, preserving order
func AvailableSizes(sizes []models.ProductSize) []models.ProductSize {
	out := make([]models.ProductSize, 0, len(sizes))
	for _, s := range sizes {
		if IsAvailable(s) {
			out = append(out, s)
		}
	}
	return out
}
