package service

import (
	"context"
	"fmt"
	"time"

	"storefront-service/config"
	"storefront-service/internal/broker"
	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalyticsService tracks storefront activity. Handlers publish events and
// return immediately; the analytics worker persists them.
type AnalyticsService struct {
	store          *store.Store
	redis          *redisclient.Client
	eventPublisher *broker.EventPublisher
	cfg            config.StoreConfig
	logger         *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	store *store.Store,
	redis *redisclient.Client,
	eventPublisher *broker.EventPublisher,
	cfg config.StoreConfig,
) *AnalyticsService {
	return &AnalyticsService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		logger:         util.GetLogger(),
	}
}

// TrackView records a product page view. Failures are logged, never
// surfaced; tracking must not break the page.
func (s *AnalyticsService) TrackView(ctx context.Context, slug string) {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.TrackView")
	defer span.End()

	product, err := s.store.GetProductBySlug(ctx, slug, true)
	if err != nil || product == nil {
		if err != nil {
			s.logger.Warn("View tracking lookup failed", zap.String("slug", slug), zap.Error(err))
		}
		return
	}

	util.ProductViewsTotal.Inc()

	if _, err := s.redis.IncrementViewCount(ctx, product.ID); err != nil {
		s.logger.Warn("Failed to bump hot view counter", zap.Error(err))
	}

	event := &models.ProductViewedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeProductViewed,
			Timestamp: time.Now(),
		},
		ProductID:   product.ID,
		ProductSlug: product.Slug,
	}
	if err := s.eventPublisher.PublishProductViewed(ctx, event); err != nil {
		s.logger.Error("Failed to publish ProductViewed event", zap.Error(err))
	}
}

// BuildContactLink renders the WhatsApp deep link for a published product
// and size, and records the click.
func (s *AnalyticsService) BuildContactLink(ctx context.Context, slug, size string) (string, error) {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.BuildContactLink")
	defer span.End()

	product, err := s.store.GetProductBySlug(ctx, slug, true)
	if err != nil {
		return "", fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return "", fmt.Errorf("product not found: %s", slug)
	}

	phone, err := s.store.GetSetting(ctx, "whatsapp_number", s.cfg.WhatsAppNumber)
	if err != nil {
		s.logger.Warn("Failed to read whatsapp_number setting, using fallback", zap.Error(err))
	}

	baseURL, err := s.store.GetSetting(ctx, "store_base_url", s.cfg.BaseURL)
	if err != nil {
		s.logger.Warn("Failed to read store_base_url setting, using fallback", zap.Error(err))
	}

	link := catalog.BuildWhatsAppLink(product, size, phone, baseURL)

	util.WhatsAppClicksTotal.Inc()

	event := &models.WhatsAppClickedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeWhatsAppClicked,
			Timestamp: time.Now(),
		},
		ProductID:   product.ID,
		ProductSlug: product.Slug,
		Size:        size,
	}
	if err := s.eventPublisher.PublishWhatsAppClicked(ctx, event); err != nil {
		s.logger.Error("Failed to publish WhatsAppClicked event", zap.Error(err))
	}

	return link, nil
}

// PersistView writes a view event: append-only log row plus an atomic
// counter bump. Called by the analytics worker.
func (s *AnalyticsService) PersistView(ctx context.Context, event *models.ProductViewedEvent) error {
	if err := s.store.InsertProductView(ctx, event.ProductID); err != nil {
		return fmt.Errorf("failed to insert product view: %w", err)
	}
	if err := s.store.IncrementViewCount(ctx, event.ProductID); err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

// PersistClick writes a WhatsApp click event. Called by the analytics worker.
func (s *AnalyticsService) PersistClick(ctx context.Context, event *models.WhatsAppClickedEvent) error {
	if err := s.store.InsertAnalyticsEvent(ctx, event.ProductID, event.EventType); err != nil {
		return fmt.Errorf("failed to insert analytics event: %w", err)
	}
	if err := s.store.IncrementWhatsAppClicks(ctx, event.ProductID); err != nil {
		return fmt.Errorf("failed to increment whatsapp clicks: %w", err)
	}
	return nil
}
