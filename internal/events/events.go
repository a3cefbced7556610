package events

import (
	"time"

	"github.com/google/uuid"
)

// Source identifies this service in published CloudEvents.
const Source = "service-reservation"

// Topics.
const (
	TopicReservationEvents = "reservation.events"
	TopicGuestEvents       = "guest.events"
)

// Event types published by this service.
const (
	BookingCreated   = "reservation.booking.created"
	BookingUpdated   = "reservation.booking.updated"
	BookingCancelled = "reservation.booking.cancelled"
	PaymentRecorded  = "reservation.payment.recorded"
)

// Event types consumed from the guest directory service.
const (
	GuestRegistered = "guest.registered"
	GuestRemoved    = "guest.removed"
)

// BookingCreatedEvent is published after a booking commits.
type BookingCreatedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	GuestID    uuid.UUID `json:"guest_id"`
	RoomID     uuid.UUID `json:"room_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Nights     int       `json:"nights"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingUpdatedEvent is published after an edit commits.
type BookingUpdatedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	RoomID     uuid.UUID `json:"room_id"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published after a cancellation commits.
type BookingCancelledEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	RoomID     uuid.UUID `json:"room_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentRecordedEvent is published after a settlement is recorded.
type PaymentRecordedEvent struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// GuestRegisteredEvent mirrors a guest into the local read model.
type GuestRegisteredEvent struct {
	GuestID    uuid.UUID `json:"guest_id"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone"`
	OccurredAt time.Time `json:"occurred_at"`
}

// GuestRemovedEvent marks a guest as removed in the local read model.
type GuestRemovedEvent struct {
	GuestID    uuid.UUID `json:"guest_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
