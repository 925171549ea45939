package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicBookingEvents = "booking.events"
	TopicPaymentEvents = "payment.events"
)

// Event types.
const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	BookingCancelled     = "booking.cancelled"
	PaymentRecorded      = "payment.recorded"
)

// BookingCreatedEvent is published after a new booking has been persisted.
type BookingCreatedEvent struct {
	BookingID        uuid.UUID `json:"booking_id"`
	BookingReference string    `json:"booking_reference"`
	CustomerEmail    string    `json:"customer_email"`
	ItemID           string    `json:"item_id"`
	ItemName         string    `json:"item_name"`
	TotalAmount      float64   `json:"total_amount"`
	Currency         string    `json:"currency"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent is published when an update moves a booking to a
// different status.
type BookingStatusChangedEvent struct {
	BookingID        uuid.UUID `json:"booking_id"`
	BookingReference string    `json:"booking_reference"`
	FromStatus       string    `json:"from_status"`
	ToStatus         string    `json:"to_status"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published when a booking is cancelled.
type BookingCancelledEvent struct {
	BookingID        uuid.UUID `json:"booking_id"`
	BookingReference string    `json:"booking_reference"`
	Reason           string    `json:"reason"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// PaymentRecordedEvent arrives on payment.events when the finance side records
// a received payment against a booking.
type PaymentRecordedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	RecordedAt time.Time `json:"recorded_at"`
}
