package service

import (
	"errors"
	"testing"

	"storefront-service/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func TestValidationResultLabel(t *testing.T) {
	assert.Equal(t, "valid", validationResultLabel(nil))
	assert.Equal(t, "expired", validationResultLabel(catalog.ErrExpired))
	assert.Equal(t, "not_yet_valid", validationResultLabel(catalog.ErrNotYetValid))
	assert.Equal(t, "usage_limit_reached", validationResultLabel(catalog.ErrUsageLimitReached))
	assert.Equal(t, "minimum_purchase_not_met", validationResultLabel(catalog.ErrMinimumPurchaseNotMet))
	assert.Equal(t, "invalid_code", validationResultLabel(catalog.ErrInvalidCode))
	assert.Equal(t, "invalid_code", validationResultLabel(errors.New("boom")))
}
