package payment

import (
	"context"

	"github.com/google/uuid"
)

// PaymentRepository defines the persistence contract for settlement records.
type PaymentRepository interface {
	// FindByID retrieves a payment by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindByBookingID retrieves the most recent payment for a booking.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error)

	// FindActiveByBookingID retrieves the booking's active settlement record
	// (status paid or unpaid), if any.
	FindActiveByBookingID(ctx context.Context, bookingID uuid.UUID) (*Payment, error)

	// ListAll retrieves payments with pagination, newest first (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Payment, int64, error)

	// GetRevenueStats returns the total of paid settlements and a count of
	// records by status (admin).
	GetRevenueStats(ctx context.Context) (totalPaidCents int64, countByStatus map[string]int64, err error)

	// Save persists a new payment record.
	Save(ctx context.Context, payment *Payment) error
}
