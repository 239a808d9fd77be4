package catalog

import (
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestIsAvailable(t *testing.T) {
	assert.False(t, IsAvailable(models.ProductSize{Size: "9", StockQuantity: 0}))
	assert.True(t, IsAvailable(models.ProductSize{Size: "9", StockQuantity: 1}))
}

func TestHasStock(t *testing.T) {
	assert.False(t, HasStock(nil))
	assert.False(t, HasStock([]models.ProductSize{
		{Size: "8", StockQuantity: 0},
		{Size: "9", StockQuantity: 0},
	}))
	assert.True(t, HasStock([]models.ProductSize{
		{Size: "8", StockQuantity: 0},
		{Size: "9", StockQuantity: 2},
	}))
}

func TestStockLevel(t *testing.T) {
	assert.Equal(t, StockLevelOut, StockLevel(0, DefaultLowStockThreshold))
	assert.Equal(t, StockLevelLow, StockLevel(1, DefaultLowStockThreshold))
	assert.Equal(t, StockLevelLow, StockLevel(2, DefaultLowStockThreshold))
	assert.Equal(t, StockLevelIn, StockLevel(3, DefaultLowStockThreshold))
	assert.Equal(t, StockLevelIn, StockLevel(10, DefaultLowStockThreshold))
}

func TestAvailableSizes(t *testing.T) {
	sizes := []models.ProductSize{
		{Size: "8", StockQuantity: 0},
		{Size: "9", StockQuantity: 3},
		{Size: "10", StockQuantity: 1},
	}

	got := AvailableSizes(sizes)
	assert.Len(t, got, 2)
	assert.Equal(t, "9", got[0].Size)
	assert.Equal(t, "10", got[1].Size)
}
