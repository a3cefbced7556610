package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Selam-Hotels/service-reservation/internal/domain/booking"
	"github.com/Selam-Hotels/service-reservation/internal/domain/payment"
	"github.com/Selam-Hotels/service-reservation/internal/domain/room"
	"github.com/Selam-Hotels/service-reservation/internal/events"
	"github.com/Selam-Hotels/service-reservation/pkg/domain"
)

// Derived display statuses for a booking's settlement.
const (
	SettlementPaid   = "Paid"
	SettlementUnpaid = "Unpaid"
)

// RecordPaymentRequest is the DTO for recording a settlement. A nil amount
// means "charge the default": nights times the room's nightly rate.
type RecordPaymentRequest struct {
	BookingID   uuid.UUID `json:"booking_id" binding:"required"`
	Method      string    `json:"method" binding:"required"`
	Status      string    `json:"status" binding:"required"`
	AmountCents *int64    `json:"amount_cents"`
	Description string    `json:"description"`
}

// PaymentDTO is the API response representation of a payment.
type PaymentDTO struct {
	ID          uuid.UUID `json:"id"`
	BookingID   uuid.UUID `json:"booking_id"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaymentStatsDTO holds settlement statistics for the admin dashboard.
type PaymentStatsDTO struct {
	TotalPaidCents int64            `json:"total_paid_cents"`
	TotalPayments  int64            `json:"total_payments"`
	ByStatus       map[string]int64 `json:"by_status"`
}

// SettlementService links payments to bookings: it computes the default
// charge, records settlements, and derives a booking's paid/unpaid status.
type SettlementService struct {
	payments payment.PaymentRepository
	bookings booking.BookingRepository
	rooms    room.RoomRepository
	locks    *booking.LockRegistry
	producer EventPublisher
	logger   *zap.Logger
}

// NewSettlementService creates a new SettlementService. locks is keyed by
// booking id and serializes concurrent Record calls for one booking.
func NewSettlementService(
	payments payment.PaymentRepository,
	bookings booking.BookingRepository,
	rooms room.RoomRepository,
	locks *booking.LockRegistry,
	producer EventPublisher,
	logger *zap.Logger,
) *SettlementService {
	return &SettlementService{
		payments: payments,
		bookings: bookings,
		rooms:    rooms,
		locks:    locks,
		producer: producer,
		logger:   logger,
	}
}

// DefaultAmount is the suggested charge for a booking: nights times the
// room's nightly rate. Nights is always >= 1 for a valid booking.
func (s *SettlementService) DefaultAmount(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	r, err := s.rooms.FindByID(ctx, b.RoomID())
	if err != nil {
		return 0, err
	}
	return int64(b.Nights()) * r.RateCents(), nil
}

// Record creates a settlement record against a booking. A booking with an
// active settlement (paid or unpaid) rejects a second one; refunded and
// failed records do not block.
func (s *SettlementService) Record(ctx context.Context, req RecordPaymentRequest) (*PaymentDTO, error) {
	b, err := s.bookings.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(b.ID())
	defer unlock()

	if _, err := s.payments.FindActiveByBookingID(ctx, b.ID()); err == nil {
		return nil, domain.NewConflictError("booking already has an active payment")
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	var amount int64
	if req.AmountCents != nil {
		amount = *req.AmountCents
	} else {
		r, err := s.rooms.FindByID(ctx, b.RoomID())
		if err != nil {
			return nil, err
		}
		amount = int64(b.Nights()) * r.RateCents()
	}

	p, err := payment.NewPayment(b.ID(), payment.Method(req.Method), payment.Status(req.Status), amount, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.payments.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", p.ID().String()),
		zap.String("booking_id", b.ID().String()),
		zap.Int64("amount_cents", p.AmountCents()),
		zap.String("status", string(p.Status())),
	)

	publishEvent(ctx, s.producer, s.logger, events.PaymentRecorded, events.PaymentRecordedEvent{
		PaymentID:   p.ID(),
		BookingID:   b.ID(),
		AmountCents: p.AmountCents(),
		Method:      string(p.Method()),
		Status:      string(p.Status()),
		OccurredAt:  time.Now().UTC(),
	})

	dto := toPaymentDTO(p)
	return &dto, nil
}

// GetByID retrieves a payment by its id.
func (s *SettlementService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentDTO, error) {
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toPaymentDTO(p)
	return &dto, nil
}

// GetByBooking retrieves the most recent payment for a booking.
func (s *SettlementService) GetByBooking(ctx context.Context, bookingID uuid.UUID) (*PaymentDTO, error) {
	p, err := s.payments.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	dto := toPaymentDTO(p)
	return &dto, nil
}

// DerivedStatus computes a booking's display status: "Paid" iff an active
// settlement with status paid exists. The value is derived, never stored.
func (s *SettlementService) DerivedStatus(ctx context.Context, bookingID uuid.UUID) (string, error) {
	p, err := s.payments.FindActiveByBookingID(ctx, bookingID)
	if err != nil {
		if domain.IsNotFound(err) {
			return SettlementUnpaid, nil
		}
		return "", err
	}
	if p.IsPaid() {
		return SettlementPaid, nil
	}
	return SettlementUnpaid, nil
}

// ListAll returns a page of payments, newest first (admin).
func (s *SettlementService) ListAll(ctx context.Context, page, limit int) ([]PaymentDTO, int64, error) {
	payments, total, err := s.payments.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}
	return dtos, total, nil
}

// Stats returns aggregate settlement statistics (admin).
func (s *SettlementService) Stats(ctx context.Context) (*PaymentStatsDTO, error) {
	totalPaid, counts, err := s.payments.GetRevenueStats(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &PaymentStatsDTO{
		TotalPaidCents: totalPaid,
		TotalPayments:  total,
		ByStatus:       counts,
	}, nil
}

func toPaymentDTO(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:          p.ID(),
		BookingID:   p.BookingID(),
		AmountCents: p.AmountCents(),
		Method:      string(p.Method()),
		Status:      string(p.Status()),
		Description: p.Description(),
		CreatedAt:   p.CreatedAt(),
	}
}
