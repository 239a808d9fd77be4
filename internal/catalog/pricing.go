package catalog

import (
	"errors"
	"math"
)

// ErrInvalidDiscount is returned when a discount percentage falls outside
// [0,100]. Out-of-range values are a validation error at the admin mutation
// boundary, never silently clamped.
var ErrInvalidDiscount = errors.New("discount percentage must be between 0 and 100")

// FinalPrice derives the sellable price from a base price and an optional
// discount percentage, rounding half-up at the cent.
func FinalPrice(basePrice float64, discountPercentage *float64) float64 {
	if discountPercentage == nil || *discountPercentage == 0 {
		return basePrice
	}
	return round2(basePrice * (1 - *discountPercentage/100))
}

// ValidateDiscountPercentage rejects percentages outside [0,100]
func ValidateDiscountPercentage(discountPercentage *float64) error {
	if discountPercentage == nil {
		return nil
	}
	if *discountPercentage < 0 || *discountPercentage > 100 {
		return ErrInvalidDiscount
	}
	return nil
}

func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
