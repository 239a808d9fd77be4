package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }

func TestFinalPriceNoDiscount(t *testing.T) {
	assert.Equal(t, 100.0, FinalPrice(100, nil))
	assert.Equal(t, 100.0, FinalPrice(100, f(0)))
}

func TestFinalPriceWithDiscount(t *testing.T) {
	assert.Equal(t, 80.0, FinalPrice(100, f(20)))
	assert.Equal(t, 0.0, FinalPrice(100, f(100)))
	assert.Equal(t, 50.0, FinalPrice(100, f(50)))
}

func TestFinalPriceRoundsHalfUpAtCent(t *testing.T) {
	// 99.99 * 0.85 = 84.9915 -> 84.99
	assert.Equal(t, 84.99, FinalPrice(99.99, f(15)))
	// 10.01 * 0.95 = 9.5095 -> 9.51
	assert.Equal(t, 9.51, FinalPrice(10.01, f(5)))
	// 0.10 * 0.75 = 0.075 -> 0.08 (half-up)
	assert.Equal(t, 0.08, FinalPrice(0.10, f(25)))
}

func TestValidateDiscountPercentage(t *testing.T) {
	assert.NoError(t, ValidateDiscountPercentage(nil))
	assert.NoError(t, ValidateDiscountPercentage(f(0)))
	assert.NoError(t, ValidateDiscountPercentage(f(100)))

	assert.ErrorIs(t, ValidateDiscountPercentage(f(-1)), ErrInvalidDiscount)
	assert.ErrorIs(t, ValidateDiscountPercentage(f(101)), ErrInvalidDiscount)
}
