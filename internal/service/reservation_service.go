package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/config"
	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSizeUnavailable is returned when the requested size has no stock left.
// The reservation is rejected before any write.
var ErrSizeUnavailable = errors.New("requested size is out of stock")

// ReservationStore is the data access surface reservations need
type ReservationStore interface {
	CreateReservationTx(ctx context.Context, res *models.Reservation) error
	ReleaseReservationTx(ctx context.Context, reservationID int64, toStatus string) (*models.Reservation, error)
	ConfirmReservation(ctx context.Context, reservationID int64) (bool, error)
	GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error)
	ListReservations(ctx context.Context, status string, limit, offset int) ([]models.Reservation, error)
	ListLapsedReservations(ctx context.Context, limit int) ([]models.Reservation, error)
	GetProductSize(ctx context.Context, productID int64, size string) (*models.ProductSize, error)
}

// StockCache is the redis fast path for per-size stock
type StockCache interface {
	ReserveSize(ctx context.Context, productID int64, size string) (int, error)
	ReleaseSize(ctx context.Context, productID int64, size string) error
	InitSizeStock(ctx context.Context, productID int64, size string, quantity int) error
}

// ReservationEvents publishes reservation lifecycle events
type ReservationEvents interface {
	PublishReservationCreated(ctx context.Context, event *models.ReservationCreatedEvent) error
	PublishReservationCancelled(ctx context.Context, event *models.ReservationCancelledEvent) error
	PublishReservationExpired(ctx context.Context, event *models.ReservationExpiredEvent) error
}

// ReservationService handles stock holds for off-platform payment
// coordination over WhatsApp.
type ReservationService struct {
	store          ReservationStore
	redis          StockCache
	eventPublisher ReservationEvents
	cfg            config.StoreConfig
	logger         *zap.Logger
}

// NewReservationService creates a new reservation service
func NewReservationService(
	store ReservationStore,
	redis StockCache,
	eventPublisher ReservationEvents,
	cfg config.StoreConfig,
) *ReservationService {
	return &ReservationService{
		store:          store,
		redis:          redis,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		logger:         util.GetLogger(),
	}
}

// CreateReservationRequest carries storefront reservation input
type CreateReservationRequest struct {
	ProductID     int64  `json:"product_id" binding:"required"`
	Size          string `json:"size" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	HoldDays      int    `json:"hold_days,omitempty"`
}

// holdWindow resolves the hold duration: the configured default when the
// caller passes nothing, otherwise a validated 1-7 day window.
func (s *ReservationService) holdWindow(holdDays int) (time.Duration, error) {
	if holdDays == 0 {
		return time.Duration(s.cfg.ReservationHoldHours) * time.Hour, nil
	}
	if holdDays < s.cfg.ReservationMinDays || holdDays > s.cfg.ReservationMaxDays {
		return 0, fmt.Errorf("hold must be between %d and %d days",
			s.cfg.ReservationMinDays, s.cfg.ReservationMaxDays)
	}
	return time.Duration(holdDays) * 24 * time.Hour, nil
}

// CreateReservation places a stock hold. The redis cache is advisory in both
// directions: a hit short-circuits the decrement, but an empty or missing
// entry falls through to the FOR UPDATE transaction, which stays
// authoritative and never lets stock go negative. Whenever the cache did not
// serve the fast path it is re-seeded from the post-decrement quantity, so a
// stale zero cannot block a size that still has stock.
func (s *ReservationService) CreateReservation(ctx context.Context, req *CreateReservationRequest) (*models.Reservation, error) {
	ctx, span := util.StartSpan(ctx, "ReservationService.CreateReservation")
	defer span.End()

	start := time.Now()
	defer func() {
		util.StockReserveLatency.Observe(time.Since(start).Seconds())
	}()

	hold, err := s.holdWindow(req.HoldDays)
	if err != nil {
		util.ReservationsFailedTotal.WithLabelValues("invalid_hold").Inc()
		return nil, err
	}

	reservedInCache := false
	code, err := s.redis.ReserveSize(ctx, req.ProductID, req.Size)
	switch {
	case err != nil:
		s.logger.Warn("Redis stock fast path failed, using database only",
			zap.Int64("product_id", req.ProductID),
			zap.String("size", req.Size),
			zap.Error(err))
	case code == redisclient.ReserveOK:
		reservedInCache = true
	}

	reservation := &models.Reservation{
		ProductID:     req.ProductID,
		Size:          req.Size,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ExpiresAt:     time.Now().Add(hold),
		Status:        models.ReservationStatusPending,
	}

	if err := s.store.CreateReservationTx(ctx, reservation); err != nil {
		if reservedInCache {
			if rerr := s.redis.ReleaseSize(ctx, req.ProductID, req.Size); rerr != nil {
				s.logger.Error("Failed to roll back cached stock reservation",
					zap.Int64("product_id", req.ProductID),
					zap.String("size", req.Size),
					zap.Error(rerr))
			}
		}
		if errors.Is(err, store.ErrInsufficientStock) {
			util.ReservationsFailedTotal.WithLabelValues("out_of_stock").Inc()
			return nil, ErrSizeUnavailable
		}
		util.ReservationsFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	if !reservedInCache {
		// Re-seed from the now-authoritative post-decrement quantity.
		if size, err := s.store.GetProductSize(ctx, req.ProductID, req.Size); err == nil && size != nil {
			if err := s.redis.InitSizeStock(ctx, req.ProductID, req.Size, size.StockQuantity); err != nil {
				s.logger.Warn("Failed to seed stock cache", zap.Error(err))
			}
		}
	}

	util.ReservationsCreatedTotal.Inc()
	s.logger.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("product_id", reservation.ProductID),
		zap.String("size", reservation.Size),
		zap.Time("expires_at", reservation.ExpiresAt))

	event := &models.ReservationCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeReservationCreated,
			Timestamp: time.Now(),
		},
		ReservationID: reservation.ID,
		ProductID:     reservation.ProductID,
		Size:          reservation.Size,
		ExpiresAt:     reservation.ExpiresAt,
	}
	if err := s.eventPublisher.PublishReservationCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ReservationCreated event", zap.Error(err))
	}

	return reservation, nil
}

// CancelReservation releases a pending hold and returns its stock
func (s *ReservationService) CancelReservation(ctx context.Context, reservationID int64) error {
	ctx, span := util.StartSpan(ctx, "ReservationService.CancelReservation")
	defer span.End()

	res, err := s.store.ReleaseReservationTx(ctx, reservationID, models.ReservationStatusCancelled)
	if err != nil {
		return err
	}
	if res == nil {
		return fmt.Errorf("reservation %d is not pending", reservationID)
	}

	if rerr := s.redis.ReleaseSize(ctx, res.ProductID, res.Size); rerr != nil {
		s.logger.Warn("Failed to release cached stock",
			zap.Int64("product_id", res.ProductID),
			zap.String("size", res.Size),
			zap.Error(rerr))
	}

	event := &models.ReservationCancelledEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeReservationCancelled,
			Timestamp: time.Now(),
		},
		ReservationID: res.ID,
		ProductID:     res.ProductID,
		Size:          res.Size,
	}
	if perr := s.eventPublisher.PublishReservationCancelled(ctx, event); perr != nil {
		s.logger.Error("Failed to publish ReservationCancelled event", zap.Error(perr))
	}

	util.ReservationsCancelledTotal.Inc()
	s.logger.Info("Reservation cancelled", zap.Int64("reservation_id", reservationID))
	return nil
}

// ConfirmReservation marks a hold as a completed sale; stock stays deducted
func (s *ReservationService) ConfirmReservation(ctx context.Context, reservationID int64) error {
	confirmed, err := s.store.ConfirmReservation(ctx, reservationID)
	if err != nil {
		return err
	}
	if !confirmed {
		return fmt.Errorf("reservation %d is not pending", reservationID)
	}
	s.logger.Info("Reservation confirmed", zap.Int64("reservation_id", reservationID))
	return nil
}

// GetReservation retrieves a reservation by ID
func (s *ReservationService) GetReservation(ctx context.Context, reservationID int64) (*models.Reservation, error) {
	return s.store.GetReservationByID(ctx, reservationID)
}

// ListReservations lists reservations for the admin console
func (s *ReservationService) ListReservations(ctx context.Context, status string, page int) ([]models.Reservation, error) {
	if page < 1 {
		page = 1
	}
	limit := s.cfg.AdminPageSize
	return s.store.ListReservations(ctx, status, limit, (page-1)*limit)
}

// ExpireLapsed releases pending reservations whose hold window has passed.
// Called periodically by the expiry worker; returns the number released.
func (s *ReservationService) ExpireLapsed(ctx context.Context) (int, error) {
	ctx, span := util.StartSpan(ctx, "ReservationService.ExpireLapsed")
	defer span.End()

	lapsed, err := s.store.ListLapsedReservations(ctx, 100)
	if err != nil {
		return 0, fmt.Errorf("failed to list lapsed reservations: %w", err)
	}

	expired := 0
	for _, res := range lapsed {
		released, err := s.store.ReleaseReservationTx(ctx, res.ID, models.ReservationStatusExpired)
		if err != nil {
			s.logger.Error("Failed to expire reservation",
				zap.Int64("reservation_id", res.ID),
				zap.Error(err))
			continue
		}
		if released == nil {
			continue
		}

		if rerr := s.redis.ReleaseSize(ctx, released.ProductID, released.Size); rerr != nil {
			s.logger.Warn("Failed to release cached stock on expiry",
				zap.Int64("product_id", released.ProductID),
				zap.Error(rerr))
		}

		event := &models.ReservationExpiredEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeReservationExpired,
				Timestamp: time.Now(),
			},
			ReservationID: released.ID,
			ProductID:     released.ProductID,
			Size:          released.Size,
		}
		if perr := s.eventPublisher.PublishReservationExpired(ctx, event); perr != nil {
			s.logger.Error("Failed to publish ReservationExpired event", zap.Error(perr))
		}

		util.ReservationsExpiredTotal.Inc()
		expired++
	}

	if expired > 0 {
		s.logger.Info("Expired lapsed reservations", zap.Int("count", expired))
	}
	return expired, nil
}
