package room

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Selam-Hotels/service-reservation/pkg/domain"
)

// Room is a bookable room in the catalog. Rooms are immutable once created;
// administrative corrections happen outside this service.
type Room struct {
	id        uuid.UUID
	number    string
	roomType  string
	rateCents int64
	createdAt time.Time
}

// NewRoom creates a Room, validating number, type, and nightly rate.
func NewRoom(number, roomType string, rateCents int64) (*Room, error) {
	number = strings.TrimSpace(number)
	roomType = strings.TrimSpace(roomType)

	if number == "" {
		return nil, domain.NewValidationError("room number is required")
	}
	if roomType == "" {
		return nil, domain.NewValidationError("room type is required")
	}
	if rateCents <= 0 {
		return nil, domain.NewValidationError("nightly rate must be positive")
	}

	return &Room{
		id:        uuid.New(),
		number:    number,
		roomType:  roomType,
		rateCents: rateCents,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstitute rebuilds a Room from persistence.
func Reconstitute(id uuid.UUID, number, roomType string, rateCents int64, createdAt time.Time) *Room {
	return &Room{
		id:        id,
		number:    number,
		roomType:  roomType,
		rateCents: rateCents,
		createdAt: createdAt,
	}
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Number() string       { return r.number }
func (r *Room) Type() string         { return r.roomType }
func (r *Room) RateCents() int64     { return r.rateCents }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
