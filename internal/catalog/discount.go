package catalog

import (
	"errors"
	"time"

	"storefront-service/internal/models"
)

// Discount validation failures, checked in order
var (
	ErrInvalidCode           = errors.New("invalid discount code")
	ErrExpired               = errors.New("discount code has expired")
	ErrNotYetValid           = errors.New("discount code is not yet valid")
	ErrUsageLimitReached     = errors.New("discount code usage limit reached")
	ErrMinimumPurchaseNotMet = errors.New("minimum purchase amount not met")
)

// ValidateDiscount checks a discount code against a purchase amount at a
// given instant and returns the discount percentage on success. The caller
// resolves the code row (case-insensitively); a nil or inactive row fails
// with ErrInvalidCode.
func ValidateDiscount(code *models.DiscountCode, purchaseAmount float64, now time.Time) (float64, error) {
	if code == nil || !code.IsActive {
		return 0, ErrInvalidCode
	}
	if now.After(code.ValidUntil) {
		return 0, ErrExpired
	}
	if now.Before(code.ValidFrom) {
		return 0, ErrNotYetValid
	}
	if code.UsageLimit != nil && code.UsedCount >= *code.UsageLimit {
		return 0, ErrUsageLimitReached
	}
	if code.MinPurchase != nil && purchaseAmount < *code.MinPurchase {
		return 0, ErrMinimumPurchaseNotMet
	}
	return code.Percentage, nil
}
