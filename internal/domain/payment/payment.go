package payment

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Selam-Hotels/service-reservation/pkg/domain"
)

// Method is how a guest settled at the front desk.
type Method string

const (
	MethodCash         Method = "cash"
	MethodCard         Method = "card"
	MethodMobile       Method = "mobile"
	MethodEBirr        Method = "e_birr"
	MethodCBE          Method = "cbe"
	MethodCBEBirr      Method = "cbe_birr"
	MethodBankTransfer Method = "bank_transfer"
)

// Valid reports whether m is a known payment method.
func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodMobile, MethodEBirr, MethodCBE, MethodCBEBirr, MethodBankTransfer:
		return true
	}
	return false
}

// Status is the settlement state of a payment record.
type Status string

const (
	StatusPaid     Status = "paid"
	StatusUnpaid   Status = "unpaid"
	StatusRefunded Status = "refunded"
	StatusFailed   Status = "failed"
)

// Valid reports whether s is a known payment status.
func (s Status) Valid() bool {
	switch s {
	case StatusPaid, StatusUnpaid, StatusRefunded, StatusFailed:
		return true
	}
	return false
}

// MaxDescriptionLength caps the free-text note on a payment.
const MaxDescriptionLength = 300

// Payment is a settlement record linked to a booking. At most one active
// record (paid or unpaid) exists per booking; records are immutable.
type Payment struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	amountCents int64
	method      Method
	status      Status
	description string
	createdAt   time.Time
}

// NewPayment creates a settlement record after validating amount, method,
// status, and description.
func NewPayment(bookingID uuid.UUID, method Method, status Status, amountCents int64, description string) (*Payment, error) {
	if amountCents < 0 {
		return nil, domain.NewValidationError("amount must not be negative")
	}
	if !method.Valid() {
		return nil, domain.NewValidationError("unknown payment method %q", string(method))
	}
	if !status.Valid() {
		return nil, domain.NewValidationError("unknown payment status %q", string(status))
	}
	// Counted in characters, not bytes; descriptions are often Ethiopic.
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, domain.NewValidationError("description must be at most %d characters", MaxDescriptionLength)
	}

	return &Payment{
		id:          uuid.New(),
		bookingID:   bookingID,
		amountCents: amountCents,
		method:      method,
		status:      status,
		description: description,
		createdAt:   time.Now().UTC(),
	}, nil
}

// Reconstitute rebuilds a Payment from persistence.
func Reconstitute(id, bookingID uuid.UUID, amountCents int64, method Method, status Status, description string, createdAt time.Time) *Payment {
	return &Payment{
		id:          id,
		bookingID:   bookingID,
		amountCents: amountCents,
		method:      method,
		status:      status,
		description: description,
		createdAt:   createdAt,
	}
}

func (p *Payment) ID() uuid.UUID        { return p.id }
func (p *Payment) BookingID() uuid.UUID { return p.bookingID }
func (p *Payment) AmountCents() int64   { return p.amountCents }
func (p *Payment) Method() Method       { return p.method }
func (p *Payment) Status() Status       { return p.status }
func (p *Payment) Description() string  { return p.description }
func (p *Payment) CreatedAt() time.Time { return p.createdAt }

// IsPaid reports whether this record settles the booking as paid.
func (p *Payment) IsPaid() bool { return p.status == StatusPaid }

// Active reports whether this record counts as the booking's current
// settlement. Refunded and failed records do not block a new one.
func (p *Payment) Active() bool {
	return p.status == StatusPaid || p.status == StatusUnpaid
}
