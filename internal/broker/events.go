package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"storefront-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing storefront domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishProductViewed publishes a ProductViewed event
func (ep *EventPublisher) PublishProductViewed(ctx context.Context, event *models.ProductViewedEvent) error {
	key := fmt.Sprintf("product-%d", event.ProductID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishWhatsAppClicked publishes a WhatsAppClicked event
func (ep *EventPublisher) PublishWhatsAppClicked(ctx context.Context, event *models.WhatsAppClickedEvent) error {
	key := fmt.Sprintf("product-%d", event.ProductID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishReservationCreated publishes a ReservationCreated event
func (ep *EventPublisher) PublishReservationCreated(ctx context.Context, event *models.ReservationCreatedEvent) error {
	key := fmt.Sprintf("reservation-%d", event.ReservationID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishReservationCancelled publishes a ReservationCancelled event
func (ep *EventPublisher) PublishReservationCancelled(ctx context.Context, event *models.ReservationCancelledEvent) error {
	key := fmt.Sprintf("reservation-%d", event.ReservationID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishReservationExpired publishes a ReservationExpired event
func (ep *EventPublisher) PublishReservationExpired(ctx context.Context, event *models.ReservationExpiredEvent) error {
	key := fmt.Sprintf("reservation-%d", event.ReservationID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler routes incoming analytics events
type EventHandler struct {
	onProductViewed   func(context.Context, *models.ProductViewedEvent) error
	onWhatsAppClicked func(context.Context, *models.WhatsAppClickedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnProductViewed registers a handler for ProductViewed events
func (eh *EventHandler) OnProductViewed(handler func(context.Context, *models.ProductViewedEvent) error) {
	eh.onProductViewed = handler
}

// OnWhatsAppClicked registers a handler for WhatsAppClicked events
func (eh *EventHandler) OnWhatsAppClicked(handler func(context.Context, *models.WhatsAppClickedEvent) error) {
	eh.onWhatsAppClicked = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeProductViewed:
		if eh.onProductViewed != nil {
			var event models.ProductViewedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ProductViewed event: %w", err)
			}
			return eh.onProductViewed(ctx, &event)
		}

	case models.EventTypeWhatsAppClicked:
		if eh.onWhatsAppClicked != nil {
			var event models.WhatsAppClickedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal WhatsAppClicked event: %w", err)
			}
			return eh.onWhatsAppClicked(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
