package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for Booking aggregates.
// Exclude parameters take uuid.Nil to mean "exclude nothing".
type BookingRepository interface {
	// FindByID retrieves a booking by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// ListAll retrieves bookings with pagination, newest first.
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// FindOverlapping retrieves all active bookings whose interval intersects
	// [checkIn, checkOut), regardless of room, excluding excludeID.
	FindOverlapping(ctx context.Context, checkIn, checkOut time.Time, excludeID uuid.UUID) ([]*Booking, error)

	// ExistsOverlap reports whether any active booking for roomID intersects
	// [checkIn, checkOut), excluding excludeID.
	ExistsOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (bool, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
