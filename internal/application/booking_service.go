package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Selam-Hotels/service-reservation/internal/domain/booking"
	"github.com/Selam-Hotels/service-reservation/internal/domain/guest"
	"github.com/Selam-Hotels/service-reservation/internal/domain/room"
	"github.com/Selam-Hotels/service-reservation/internal/events"
	"github.com/Selam-Hotels/service-reservation/pkg/domain"
)

// CreateBookingRequest is the DTO for creating a booking.
type CreateBookingRequest struct {
	GuestID  uuid.UUID `json:"guest_id" binding:"required"`
	RoomID   uuid.UUID `json:"room_id" binding:"required"`
	CheckIn  string    `json:"check_in" binding:"required"`
	CheckOut string    `json:"check_out" binding:"required"`
}

// EditBookingRequest is the patch DTO for editing a booking. Nil fields are
// left unchanged.
type EditBookingRequest struct {
	RoomID   *uuid.UUID `json:"room_id"`
	CheckIn  *string    `json:"check_in"`
	CheckOut *string    `json:"check_out"`
}

// BookingDTO is the API response representation of a booking.
type BookingDTO struct {
	ID            uuid.UUID `json:"id"`
	GuestID       uuid.UUID `json:"guest_id"`
	RoomID        uuid.UUID `json:"room_id"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Nights        int       `json:"nights"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookingService is the booking ledger: it owns the overlap invariant and
// the check-in edit policy. The availability check and the commit for a room
// run under that room's lock so two concurrent requests cannot both see
// "available" and both insert.
type BookingService struct {
	bookings booking.BookingRepository
	rooms    room.RoomRepository
	guests   guest.Directory
	locks    *booking.LockRegistry
	producer EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings booking.BookingRepository,
	rooms room.RoomRepository,
	guests guest.Directory,
	locks *booking.LockRegistry,
	producer EventPublisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		rooms:    rooms,
		guests:   guests,
		locks:    locks,
		producer: producer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create validates references and availability, then commits the booking.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*BookingDTO, error) {
	checkIn, err := parseDate("check_in", req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseDate("check_out", req.CheckOut)
	if err != nil {
		return nil, err
	}

	b, err := booking.NewBooking(req.GuestID, req.RoomID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	if _, err := s.rooms.FindByID(ctx, req.RoomID); err != nil {
		return nil, err
	}

	exists, err := s.guests.Exists(ctx, req.GuestID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("guest", req.GuestID.String())
	}

	// Serialize check-and-insert per room.
	unlock := s.locks.Lock(req.RoomID)
	defer unlock()

	taken, err := s.bookings.ExistsOverlap(ctx, req.RoomID, b.CheckIn(), b.CheckOut(), uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewConflictError("room not available")
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID().String()),
		zap.String("room_id", b.RoomID().String()),
		zap.String("check_in", b.CheckIn().Format(DateLayout)),
		zap.String("check_out", b.CheckOut().Format(DateLayout)),
	)

	publishEvent(ctx, s.producer, s.logger, events.BookingCreated, events.BookingCreatedEvent{
		BookingID:  b.ID(),
		GuestID:    b.GuestID(),
		RoomID:     b.RoomID(),
		CheckIn:    b.CheckIn().Format(DateLayout),
		CheckOut:   b.CheckOut().Format(DateLayout),
		Nights:     b.Nights(),
		OccurredAt: s.now(),
	})

	dto := toBookingDTO(b)
	return &dto, nil
}

// Edit applies a patch to a booking. Changed fields commit together or not
// at all; any change to room or dates re-validates availability for the
// final triple, excluding the booking's own interval.
func (s *BookingService) Edit(ctx context.Context, bookingID uuid.UUID, req EditBookingRequest) (*BookingDTO, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	finalRoom := b.RoomID()
	if req.RoomID != nil {
		finalRoom = *req.RoomID
	}
	finalIn, finalOut := b.CheckIn(), b.CheckOut()
	if req.CheckIn != nil {
		if finalIn, err = parseDate("check_in", *req.CheckIn); err != nil {
			return nil, err
		}
	}
	if req.CheckOut != nil {
		if finalOut, err = parseDate("check_out", *req.CheckOut); err != nil {
			return nil, err
		}
	}

	roomChanged := finalRoom != b.RoomID()
	datesChanged := !finalIn.Equal(b.CheckIn()) || !finalOut.Equal(b.CheckOut())
	if !roomChanged && !datesChanged {
		dto := toBookingDTO(b)
		return &dto, nil
	}

	if roomChanged {
		if _, err := s.rooms.FindByID(ctx, finalRoom); err != nil {
			return nil, err
		}
	}

	// Both the prior and the new room serialize, in deterministic order.
	unlock := s.locks.LockPair(b.RoomID(), finalRoom)
	defer unlock()

	if datesChanged {
		if err := b.Reschedule(finalIn, finalOut, s.now()); err != nil {
			return nil, err
		}
	}
	if roomChanged {
		if err := b.MoveToRoom(finalRoom); err != nil {
			return nil, err
		}
	}

	taken, err := s.bookings.ExistsOverlap(ctx, finalRoom, b.CheckIn(), b.CheckOut(), b.ID())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewConflictError("room not available")
	}

	b.IncrementVersion()
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking updated",
		zap.String("booking_id", b.ID().String()),
		zap.String("room_id", b.RoomID().String()),
	)

	publishEvent(ctx, s.producer, s.logger, events.BookingUpdated, events.BookingUpdatedEvent{
		BookingID:  b.ID(),
		RoomID:     b.RoomID(),
		CheckIn:    b.CheckIn().Format(DateLayout),
		CheckOut:   b.CheckOut().Format(DateLayout),
		OccurredAt: s.now(),
	})

	dto := toBookingDTO(b)
	return &dto, nil
}

// Cancel marks a booking cancelled, freeing its room for the dates.
func (s *BookingService) Cancel(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(b.RoomID())
	defer unlock()

	if err := b.Cancel(); err != nil {
		return nil, err
	}

	b.IncrementVersion()
	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking cancelled",
		zap.String("booking_id", b.ID().String()),
		zap.String("room_id", b.RoomID().String()),
	)

	publishEvent(ctx, s.producer, s.logger, events.BookingCancelled, events.BookingCancelledEvent{
		BookingID:  b.ID(),
		RoomID:     b.RoomID(),
		OccurredAt: s.now(),
	})

	dto := toBookingDTO(b)
	return &dto, nil
}

// Get retrieves a booking by id.
func (s *BookingService) Get(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	dto := toBookingDTO(b)
	return &dto, nil
}

// List returns a page of bookings, newest first.
func (s *BookingService) List(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, b := range bookings {
		dtos[i] = toBookingDTO(b)
	}
	return dtos, total, nil
}

func toBookingDTO(b *booking.Booking) BookingDTO {
	return BookingDTO{
		ID:        b.ID(),
		GuestID:   b.GuestID(),
		RoomID:    b.RoomID(),
		CheckIn:   b.CheckIn().Format(DateLayout),
		CheckOut:  b.CheckOut().Format(DateLayout),
		Nights:    b.Nights(),
		Status:    string(b.Status()),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}
