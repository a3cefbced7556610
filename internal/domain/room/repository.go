package room

import (
	"context"

	"github.com/google/uuid"
)

// RoomRepository defines the persistence contract for the room catalog.
type RoomRepository interface {
	// FindByID retrieves a room by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// FindByNumber retrieves a room by its unique room number.
	FindByNumber(ctx context.Context, number string) (*Room, error)

	// ListAll retrieves all rooms ordered by room number.
	ListAll(ctx context.Context) ([]*Room, error)

	// Save persists a new room.
	Save(ctx context.Context, room *Room) error
}
