package worker

import (
	"context"
	"log"
	"time"

	"storefront-service/internal/broker"
	"storefront-service/internal/service"
)

// AnalyticsWorker consumes tracking events and persists them: append-only
// log rows plus atomic counter bumps on the product row.
type AnalyticsWorker struct {
	consumer         *broker.Consumer
	eventHandler     *broker.EventHandler
	analyticsService *service.AnalyticsService
}

// NewAnalyticsWorker creates a new analytics worker
func NewAnalyticsWorker(
	consumer *broker.Consumer,
	analyticsService *service.AnalyticsService,
) *AnalyticsWorker {
	eventHandler := broker.NewEventHandler()

	eventHandler.OnProductViewed(analyticsService.PersistView)
	eventHandler.OnWhatsAppClicked(analyticsService.PersistClick)

	return &AnalyticsWorker{
		consumer:         consumer,
		eventHandler:     eventHandler,
		analyticsService: analyticsService,
	}
}

// Start starts the worker
func (w *AnalyticsWorker) Start(ctx context.Context) error {
	log.Println("Starting analytics worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *AnalyticsWorker) Stop() error {
	log.Println("Stopping analytics worker...")
	return w.consumer.Close()
}

// ExpiryWorker periodically releases pending reservations whose hold window
// has lapsed, returning their stock.
type ExpiryWorker struct {
	reservationService *service.ReservationService
	interval           time.Duration
}

// NewExpiryWorker creates a new reservation expiry worker
func NewExpiryWorker(reservationService *service.ReservationService, interval time.Duration) *ExpiryWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ExpiryWorker{
		reservationService: reservationService,
		interval:           interval,
	}
}

// Start runs the expiry loop until the context is cancelled
func (w *ExpiryWorker) Start(ctx context.Context) error {
	log.Println("Starting reservation expiry worker...")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Expiry worker context cancelled, stopping...")
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.reservationService.ExpireLapsed(ctx); err != nil {
				log.Printf("Reservation expiry sweep failed: %v", err)
			}
		}
	}
}
