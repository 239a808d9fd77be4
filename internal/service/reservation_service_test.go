package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-service/config"
	"storefront-service/internal/models"
	"storefront-service/internal/redisclient"
	"storefront-service/internal/store"
	"storefront-service/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReservationService() *ReservationService {
	return &ReservationService{
		cfg: config.StoreConfig{
			ReservationHoldHours: 72,
			ReservationMinDays:   1,
			ReservationMaxDays:   7,
		},
	}
}

func TestHoldWindowDefault(t *testing.T) {
	rs := testReservationService()

	hold, err := rs.holdWindow(0)
	assert.NoError(t, err)
	assert.Equal(t, 72*time.Hour, hold)
}

func TestHoldWindowCallerSupplied(t *testing.T) {
	rs := testReservationService()

	hold, err := rs.holdWindow(1)
	assert.NoError(t, err)
	assert.Equal(t, 24*time.Hour, hold)

	hold, err = rs.holdWindow(7)
	assert.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, hold)
}

func TestHoldWindowOutOfRange(t *testing.T) {
	rs := testReservationService()

	_, err := rs.holdWindow(8)
	assert.Error(t, err)

	_, err = rs.holdWindow(-1)
	assert.Error(t, err)
}

type stubReservationStore struct {
	size       *models.ProductSize
	createErr  error
	releaseRow *models.Reservation
	releaseErr error
	lapsed     []models.Reservation
}

func (s *stubReservationStore) CreateReservationTx(ctx context.Context, res *models.Reservation) error {
	if s.createErr != nil {
		return s.createErr
	}
	res.ID = 1
	return nil
}

func (s *stubReservationStore) ReleaseReservationTx(ctx context.Context, reservationID int64, toStatus string) (*models.Reservation, error) {
	return s.releaseRow, s.releaseErr
}

func (s *stubReservationStore) ConfirmReservation(ctx context.Context, reservationID int64) (bool, error) {
	return true, nil
}

func (s *stubReservationStore) GetReservationByID(ctx context.Context, id int64) (*models.Reservation, error) {
	return nil, nil
}

func (s *stubReservationStore) ListReservations(ctx context.Context, status string, limit, offset int) ([]models.Reservation, error) {
	return nil, nil
}

func (s *stubReservationStore) ListLapsedReservations(ctx context.Context, limit int) ([]models.Reservation, error) {
	return s.lapsed, nil
}

func (s *stubReservationStore) GetProductSize(ctx context.Context, productID int64, size string) (*models.ProductSize, error) {
	return s.size, nil
}

type stubStockCache struct {
	reserveCode int
	reserveErr  error
	releases    int
	seeds       int
	seededQty   int
}

func (c *stubStockCache) ReserveSize(ctx context.Context, productID int64, size string) (int, error) {
	return c.reserveCode, c.reserveErr
}

func (c *stubStockCache) ReleaseSize(ctx context.Context, productID int64, size string) error {
	c.releases++
	return nil
}

func (c *stubStockCache) InitSizeStock(ctx context.Context, productID int64, size string, quantity int) error {
	c.seeds++
	c.seededQty = quantity
	return nil
}

type stubEventSink struct {
	created   int
	cancelled int
	expired   int
}

func (e *stubEventSink) PublishReservationCreated(ctx context.Context, event *models.ReservationCreatedEvent) error {
	e.created++
	return nil
}

func (e *stubEventSink) PublishReservationCancelled(ctx context.Context, event *models.ReservationCancelledEvent) error {
	e.cancelled++
	return nil
}

func (e *stubEventSink) PublishReservationExpired(ctx context.Context, event *models.ReservationExpiredEvent) error {
	e.expired++
	return nil
}

func newStubbedService(st *stubReservationStore, cache *stubStockCache, events *stubEventSink) *ReservationService {
	return &ReservationService{
		store:          st,
		redis:          cache,
		eventPublisher: events,
		cfg: config.StoreConfig{
			ReservationHoldHours: 72,
			ReservationMinDays:   1,
			ReservationMaxDays:   7,
			AdminPageSize:        20,
		},
		logger: util.GetLogger(),
	}
}

func validRequest() *CreateReservationRequest {
	return &CreateReservationRequest{
		ProductID:     42,
		Size:          "9",
		CustomerName:  "Budi Santoso",
		CustomerEmail: "budi@example.com",
		CustomerPhone: "+62 812-3456-7890",
	}
}

func TestCreateReservationStaleCacheFallsThroughToDatabase(t *testing.T) {
	st := &stubReservationStore{size: &models.ProductSize{StockQuantity: 3}}
	cache := &stubStockCache{reserveCode: redisclient.ReserveEmpty}
	events := &stubEventSink{}
	rs := newStubbedService(st, cache, events)

	res, err := rs.CreateReservation(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, int64(1), res.ID)

	// An exhausted cache entry must not veto a size the database can still
	// serve; the cache gets re-seeded from the post-decrement quantity.
	assert.Equal(t, 1, cache.seeds)
	assert.Equal(t, 3, cache.seededQty)
	assert.Equal(t, 1, events.created)
}

func TestCreateReservationOutOfStockInDatabase(t *testing.T) {
	st := &stubReservationStore{createErr: store.ErrInsufficientStock}
	cache := &stubStockCache{reserveCode: redisclient.ReserveEmpty}
	rs := newStubbedService(st, cache, &stubEventSink{})

	_, err := rs.CreateReservation(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSizeUnavailable)
	assert.Zero(t, cache.releases)
}

func TestCreateReservationRollsBackCacheOnDatabaseFailure(t *testing.T) {
	st := &stubReservationStore{createErr: errors.New("connection reset")}
	cache := &stubStockCache{reserveCode: redisclient.ReserveOK}
	rs := newStubbedService(st, cache, &stubEventSink{})

	_, err := rs.CreateReservation(context.Background(), validRequest())
	assert.Error(t, err)
	assert.Equal(t, 1, cache.releases)
}

func TestCancelReservationReleasesCachedStock(t *testing.T) {
	st := &stubReservationStore{
		releaseRow: &models.Reservation{ID: 7, ProductID: 42, Size: "9"},
	}
	cache := &stubStockCache{}
	events := &stubEventSink{}
	rs := newStubbedService(st, cache, events)

	err := rs.CancelReservation(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.releases)
	assert.Equal(t, 1, events.cancelled)
}

func TestCancelReservationNotPending(t *testing.T) {
	rs := newStubbedService(&stubReservationStore{}, &stubStockCache{}, &stubEventSink{})

	err := rs.CancelReservation(context.Background(), 7)
	assert.Error(t, err)
}

func TestExpireLapsedReleasesStock(t *testing.T) {
	row := models.Reservation{ID: 9, ProductID: 42, Size: "10"}
	st := &stubReservationStore{
		lapsed:     []models.Reservation{row},
		releaseRow: &row,
	}
	cache := &stubStockCache{}
	events := &stubEventSink{}
	rs := newStubbedService(st, cache, events)

	n, err := rs.ExpireLapsed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, cache.releases)
	assert.Equal(t, 1, events.expired)
}
