package catalog

import (
	"testing"
	"time"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func validCode(now time.Time) *models.DiscountCode {
	return &models.DiscountCode{
		Code:       "VERANO20",
		Percentage: 20,
		ValidFrom:  now.Add(-24 * time.Hour),
		ValidUntil: now.Add(24 * time.Hour),
		IsActive:   true,
	}
}

func TestValidateDiscountSuccess(t *testing.T) {
	now := time.Now()

	pct, err := ValidateDiscount(validCode(now), 500, now)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, pct)
}

func TestValidateDiscountInvalidCode(t *testing.T) {
	now := time.Now()

	_, err := ValidateDiscount(nil, 500, now)
	assert.ErrorIs(t, err, ErrInvalidCode)

	code := validCode(now)
	code.IsActive = false
	_, err = ValidateDiscount(code, 500, now)
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestValidateDiscountExpired(t *testing.T) {
	now := time.Now()

	// Expiry wins regardless of other fields
	code := validCode(now)
	code.ValidUntil = now.Add(-time.Hour)
	code.UsageLimit = intp(100)
	code.UsedCount = 0

	_, err := ValidateDiscount(code, 500, now)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestValidateDiscountNotYetValid(t *testing.T) {
	now := time.Now()

	code := validCode(now)
	code.ValidFrom = now.Add(time.Hour)

	_, err := ValidateDiscount(code, 500, now)
	assert.ErrorIs(t, err, ErrNotYetValid)
}

func TestValidateDiscountUsageLimitReached(t *testing.T) {
	now := time.Now()

	code := validCode(now)
	code.UsageLimit = intp(10)
	code.UsedCount = 10

	_, err := ValidateDiscount(code, 500, now)
	assert.ErrorIs(t, err, ErrUsageLimitReached)
}

func TestValidateDiscountMinimumPurchase(t *testing.T) {
	now := time.Now()
	min := 100.0

	code := validCode(now)
	code.MinPurchase = &min

	_, err := ValidateDiscount(code, 99.99, now)
	assert.ErrorIs(t, err, ErrMinimumPurchaseNotMet)

	pct, err := ValidateDiscount(code, 100, now)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, pct)
}
