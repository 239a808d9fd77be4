package service

import (
	"testing"

	"storefront-service/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func pctp(v float64) *float64 { return &v }

func validProductRequest() *ProductRequest {
	return &ProductRequest{
		BrandID:   1,
		Name:      "Air Jordan 1",
		BasePrice: 180,
		Gender:    "men",
		Category:  "basketball",
		Condition: "new_with_box",
	}
}

func TestValidateRequest(t *testing.T) {
	ps := &ProductService{}

	assert.NoError(t, ps.validateRequest(validProductRequest()))
}

func TestValidateRequestRejectsBadEnums(t *testing.T) {
	ps := &ProductService{}

	req := validProductRequest()
	req.Gender = "unknown"
	assert.Error(t, ps.validateRequest(req))

	req = validProductRequest()
	req.Category = "skateboarding"
	assert.Error(t, ps.validateRequest(req))

	req = validProductRequest()
	req.Condition = "used"
	assert.Error(t, ps.validateRequest(req))

	req = validProductRequest()
	req.Status = "hidden"
	assert.Error(t, ps.validateRequest(req))
}

func TestValidateRequestRejectsOutOfRangeDiscount(t *testing.T) {
	ps := &ProductService{}

	req := validProductRequest()
	req.DiscountPercentage = pctp(101)
	assert.ErrorIs(t, ps.validateRequest(req), catalog.ErrInvalidDiscount)

	req.DiscountPercentage = pctp(-5)
	assert.ErrorIs(t, ps.validateRequest(req), catalog.ErrInvalidDiscount)

	req.DiscountPercentage = pctp(20)
	assert.NoError(t, ps.validateRequest(req))
}

func TestUniqueSlug(t *testing.T) {
	// Collision handling requires a store; covered by the skipped
	// integration tests in the store package.
	t.Skip("Requires mocked store")
}
