package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"go.uber.org/zap"
)

// DiscountService validates and manages discount codes
type DiscountService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewDiscountService creates a new discount service
func NewDiscountService(store *store.Store) *DiscountService {
	return &DiscountService{
		store:  store,
		logger: util.GetLogger(),
	}
}

func validationResultLabel(err error) string {
	switch {
	case err == nil:
		return "valid"
	case errors.Is(err, catalog.ErrExpired):
		return "expired"
	case errors.Is(err, catalog.ErrNotYetValid):
		return "not_yet_valid"
	case errors.Is(err, catalog.ErrUsageLimitReached):
		return "usage_limit_reached"
	case errors.Is(err, catalog.ErrMinimumPurchaseNotMet):
		return "minimum_purchase_not_met"
	default:
		return "invalid_code"
	}
}

// ValidateCode checks a code against a purchase amount without consuming a
// use. Returns the discount percentage on success.
func (s *DiscountService) ValidateCode(ctx context.Context, code string, purchaseAmount float64) (float64, error) {
	ctx, span := util.StartSpan(ctx, "DiscountService.ValidateCode")
	defer span.End()

	row, err := s.store.GetDiscountByCode(ctx, code)
	if err != nil {
		return 0, fmt.Errorf("failed to look up discount code: %w", err)
	}

	pct, verr := catalog.ValidateDiscount(row, purchaseAmount, time.Now())
	util.DiscountValidationsTotal.WithLabelValues(validationResultLabel(verr)).Inc()
	if verr != nil {
		return 0, verr
	}
	return pct, nil
}

// RedeemCode validates and consumes one use of a code. The used_count bump
// is a single conditional update, so concurrent redemptions cannot race
// past the usage limit.
func (s *DiscountService) RedeemCode(ctx context.Context, code string, purchaseAmount float64) (float64, error) {
	ctx, span := util.StartSpan(ctx, "DiscountService.RedeemCode")
	defer span.End()

	row, err := s.store.GetDiscountByCode(ctx, code)
	if err != nil {
		return 0, fmt.Errorf("failed to look up discount code: %w", err)
	}

	pct, verr := catalog.ValidateDiscount(row, purchaseAmount, time.Now())
	if verr != nil {
		util.DiscountValidationsTotal.WithLabelValues(validationResultLabel(verr)).Inc()
		return 0, verr
	}

	redeemed, err := s.store.RedeemDiscount(ctx, row.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to redeem discount code: %w", err)
	}
	if !redeemed {
		util.DiscountValidationsTotal.WithLabelValues("usage_limit_reached").Inc()
		return 0, catalog.ErrUsageLimitReached
	}

	util.DiscountValidationsTotal.WithLabelValues("redeemed").Inc()
	s.logger.Info("Discount code redeemed", zap.String("code", row.Code))
	return pct, nil
}

// CreateCode inserts a new discount code after validating its shape
func (s *DiscountService) CreateCode(ctx context.Context, code *models.DiscountCode) error {
	if code.Percentage < 1 || code.Percentage > 100 {
		return fmt.Errorf("percentage must be between 1 and 100")
	}
	if !code.ValidUntil.After(code.ValidFrom) {
		return fmt.Errorf("valid_until must be after valid_from")
	}
	if code.UsageLimit != nil && *code.UsageLimit < 1 {
		return fmt.Errorf("usage_limit must be at least 1")
	}

	if err := s.store.CreateDiscount(ctx, code); err != nil {
		return fmt.Errorf("failed to create discount code: %w", err)
	}

	s.logger.Info("Discount code created", zap.String("code", code.Code))
	return nil
}

// ListCodes lists all discount codes for the admin console
func (s *DiscountService) ListCodes(ctx context.Context) ([]models.DiscountCode, error) {
	return s.store.ListDiscounts(ctx)
}
