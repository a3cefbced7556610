package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/Selam-Hotels/service-reservation/pkg/domain"
)

// Status is the lifecycle state of a booking. Cancelled bookings keep their
// record but stop blocking the room.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// Day truncates t to midnight UTC. All stay dates are day-granular.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Tomorrow returns the first moment of the day after now.
func Tomorrow(now time.Time) time.Time {
	return Day(now).AddDate(0, 0, 1)
}

// Overlap reports whether two half-open stay intervals share a night.
// A checkout on day D and a check-in on day D do not overlap.
func Overlap(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// Booking is the aggregate root for a room reservation.
type Booking struct {
	id        uuid.UUID
	guestID   uuid.UUID
	roomID    uuid.UUID
	checkIn   time.Time // inclusive, midnight UTC
	checkOut  time.Time // exclusive, midnight UTC
	status    Status
	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates an active booking after validating the stay interval.
func NewBooking(guestID, roomID uuid.UUID, checkIn, checkOut time.Time) (*Booking, error) {
	checkIn, checkOut = Day(checkIn), Day(checkOut)
	if !checkIn.Before(checkOut) {
		return nil, domain.NewRangeError("check-in must be before check-out")
	}

	now := time.Now().UTC()
	return &Booking{
		id:        uuid.New(),
		guestID:   guestID,
		roomID:    roomID,
		checkIn:   checkIn,
		checkOut:  checkOut,
		status:    StatusActive,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstitute rebuilds a Booking from persistence.
func Reconstitute(id, guestID, roomID uuid.UUID, checkIn, checkOut time.Time, status Status, version int64, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		id:        id,
		guestID:   guestID,
		roomID:    roomID,
		checkIn:   Day(checkIn),
		checkOut:  Day(checkOut),
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) GuestID() uuid.UUID   { return b.guestID }
func (b *Booking) RoomID() uuid.UUID    { return b.roomID }
func (b *Booking) CheckIn() time.Time   { return b.checkIn }
func (b *Booking) CheckOut() time.Time  { return b.checkOut }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) Version() int64       { return b.version }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsActive reports whether the booking still blocks its room.
func (b *Booking) IsActive() bool { return b.status == StatusActive }

// Nights is the stay length in nights, always >= 1 for a valid booking.
func (b *Booking) Nights() int {
	return int(b.checkOut.Sub(b.checkIn).Hours() / 24)
}

// Overlaps reports whether the booking's interval intersects [checkIn, checkOut).
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return Overlap(b.checkIn, b.checkOut, Day(checkIn), Day(checkOut))
}

// CheckInEditable reports whether the check-in date may still be changed.
// The gate closes once the current check-in is no longer at least one full
// day in the future; time only ever moves it from editable to locked.
func (b *Booking) CheckInEditable(now time.Time) bool {
	return !b.checkIn.Before(Tomorrow(now))
}

// Reschedule changes the stay interval, enforcing the check-in edit policy
// against now. Availability for the new interval is the caller's concern.
func (b *Booking) Reschedule(checkIn, checkOut, now time.Time) error {
	if !b.IsActive() {
		return domain.NewConflictError("booking is cancelled")
	}

	checkIn, checkOut = Day(checkIn), Day(checkOut)
	if !checkIn.Equal(b.checkIn) {
		if !b.CheckInEditable(now) {
			return domain.NewPolicyError("check-in is locked")
		}
		if checkIn.Before(Tomorrow(now)) {
			return domain.NewValidationError("new check-in must be at least one day in the future")
		}
	}
	if !checkIn.Before(checkOut) {
		return domain.NewRangeError("check-out must be after check-in")
	}

	b.checkIn = checkIn
	b.checkOut = checkOut
	b.updatedAt = time.Now().UTC()
	return nil
}

// MoveToRoom reassigns the booking to another room.
func (b *Booking) MoveToRoom(roomID uuid.UUID) error {
	if !b.IsActive() {
		return domain.NewConflictError("booking is cancelled")
	}
	b.roomID = roomID
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel marks the booking cancelled. The record is kept; the room is freed.
func (b *Booking) Cancel() error {
	if !b.IsActive() {
		return domain.NewConflictError("booking already cancelled")
	}
	b.status = StatusCancelled
	b.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
