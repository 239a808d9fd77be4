package models

import "time"

// Event types
const (
	EventTypeProductViewed        = "PRODUCT_VIEWED"
	EventTypeWhatsAppClicked      = "WHATSAPP_CLICKED"
	EventTypeReservationCreated   = "RESERVATION_CREATED"
	EventTypeReservationCancelled = "RESERVATION_CANCELLED"
	EventTypeReservationExpired   = "RESERVATION_EXPIRED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductViewedEvent published when a visitor opens a product page
type ProductViewedEvent struct {
	BaseEvent
	ProductID   int64  `json:"product_id"`
	ProductSlug string `json:"product_slug"`
}

// WhatsAppClickedEvent published when a visitor follows the contact link
type WhatsAppClickedEvent struct {
	BaseEvent
	ProductID   int64  `json:"product_id"`
	ProductSlug string `json:"product_slug"`
	Size        string `json:"size"`
}

// ReservationCreatedEvent published when a stock hold is placed
type ReservationCreatedEvent struct {
	BaseEvent
	ReservationID int64     `json:"reservation_id"`
	ProductID     int64     `json:"product_id"`
	Size          string    `json:"size"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// ReservationCancelledEvent published when a hold is released by the customer
type ReservationCancelledEvent struct {
	BaseEvent
	ReservationID int64  `json:"reservation_id"`
	ProductID     int64  `json:"product_id"`
	Size          string `json:"size"`
}

// ReservationExpiredEvent published when the expiry worker releases a lapsed hold
type ReservationExpiredEvent struct {
	BaseEvent
	ReservationID int64  `json:"reservation_id"`
	ProductID     int64  `json:"product_id"`
	Size          string `json:"size"`
}
