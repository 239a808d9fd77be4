package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterNormalizeDefaults(t *testing.T) {
	var filter Filter
	filter.Normalize(12)

	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, 12, filter.PageSize)
	assert.Equal(t, float64(DefaultMinPrice), filter.MinPrice)
	assert.Equal(t, float64(DefaultMaxPrice), filter.MaxPrice)
	assert.Equal(t, SortNewest, filter.Sort)
}

func TestFilterNormalizeKeepsValidSort(t *testing.T) {
	filter := Filter{Sort: SortPriceAsc}
	filter.Normalize(12)
	assert.Equal(t, SortPriceAsc, filter.Sort)

	filter = Filter{Sort: "garbage"}
	filter.Normalize(12)
	assert.Equal(t, SortNewest, filter.Sort)
}

func TestFilterOffset(t *testing.T) {
	filter := Filter{Page: 1, PageSize: 12}
	assert.Equal(t, 0, filter.Offset())

	filter.Page = 3
	assert.Equal(t, 24, filter.Offset())
}

func TestTotalPages(t *testing.T) {
	// 25 items at 12 per page is 3 pages; page 3 holds items 24-25
	assert.Equal(t, 3, TotalPages(25, 12))
	assert.Equal(t, 1, TotalPages(12, 12))
	assert.Equal(t, 2, TotalPages(13, 12))
	assert.Equal(t, 0, TotalPages(0, 12))
}

func TestTrailingPageWindow(t *testing.T) {
	filter := Filter{Page: 3, PageSize: 12}
	offset := filter.Offset()

	count := int64(25)
	remaining := int(count) - offset
	assert.Equal(t, 24, offset)
	assert.Equal(t, 1, remaining)
}
