package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Selam-Hotels/service-reservation/internal/domain/booking"
	"github.com/Selam-Hotels/service-reservation/internal/domain/room"
	"github.com/Selam-Hotels/service-reservation/pkg/domain"
)

// AvailabilityService answers "which rooms are free for this date range".
// It is a pure read over the latest ledger state; nothing is cached.
type AvailabilityService struct {
	rooms    room.RoomRepository
	bookings booking.BookingRepository
	logger   *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(rooms room.RoomRepository, bookings booking.BookingRepository, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{rooms: rooms, bookings: bookings, logger: logger}
}

// ComputeAvailable returns every room with no active booking intersecting
// [checkIn, checkOut), ordered by room number. excludeBookingID (uuid.Nil
// for none) lets edits ignore the booking's own prior interval. Half-open
// semantics: a booking ending on day D does not block a check-in on day D.
func (s *AvailabilityService) ComputeAvailable(ctx context.Context, checkIn, checkOut time.Time, excludeBookingID uuid.UUID) ([]RoomDTO, error) {
	checkIn, checkOut = booking.Day(checkIn), booking.Day(checkOut)
	if !checkIn.Before(checkOut) {
		return nil, domain.NewRangeError("check-in must be before check-out")
	}

	all, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	overlapping, err := s.bookings.FindOverlapping(ctx, checkIn, checkOut, excludeBookingID)
	if err != nil {
		return nil, err
	}

	occupied := make(map[uuid.UUID]struct{}, len(overlapping))
	for _, b := range overlapping {
		occupied[b.RoomID()] = struct{}{}
	}

	available := make([]RoomDTO, 0, len(all))
	for _, r := range all {
		if _, taken := occupied[r.ID()]; !taken {
			available = append(available, toRoomDTO(r))
		}
	}
	return available, nil
}
