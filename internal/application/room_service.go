package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Selam-Hotels/service-reservation/internal/domain/room"
	"github.com/Selam-Hotels/service-reservation/pkg/domain"
)

// CreateRoomRequest is the DTO for adding a room to the catalog.
type CreateRoomRequest struct {
	Number    string `json:"number" binding:"required"`
	Type      string `json:"type" binding:"required"`
	RateCents int64  `json:"rate_cents" binding:"required"`
}

// RoomDTO is the API response representation of a room.
type RoomDTO struct {
	ID        uuid.UUID `json:"id"`
	Number    string    `json:"number"`
	Type      string    `json:"type"`
	RateCents int64     `json:"rate_cents"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomService is the application service for the room catalog.
type RoomService struct {
	rooms  room.RoomRepository
	logger *zap.Logger
}

// NewRoomService creates a new RoomService.
func NewRoomService(rooms room.RoomRepository, logger *zap.Logger) *RoomService {
	return &RoomService{rooms: rooms, logger: logger}
}

// Create adds a room to the catalog.
func (s *RoomService) Create(ctx context.Context, req CreateRoomRequest) (*RoomDTO, error) {
	r, err := room.NewRoom(req.Number, req.Type, req.RateCents)
	if err != nil {
		return nil, err
	}

	// Friendly duplicate check; the unique index is the real guard.
	if _, err := s.rooms.FindByNumber(ctx, r.Number()); err == nil {
		return nil, domain.NewConflictError("room number already exists")
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	if err := s.rooms.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("room created",
		zap.String("room_id", r.ID().String()),
		zap.String("number", r.Number()),
	)
	dto := toRoomDTO(r)
	return &dto, nil
}

// Get retrieves a room by id.
func (s *RoomService) Get(ctx context.Context, id uuid.UUID) (*RoomDTO, error) {
	r, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toRoomDTO(r)
	return &dto, nil
}

// List returns the whole catalog ordered by room number.
func (s *RoomService) List(ctx context.Context) ([]RoomDTO, error) {
	rooms, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]RoomDTO, len(rooms))
	for i, r := range rooms {
		dtos[i] = toRoomDTO(r)
	}
	return dtos, nil
}

func toRoomDTO(r *room.Room) RoomDTO {
	return RoomDTO{
		ID:        r.ID(),
		Number:    r.Number(),
		Type:      r.Type(),
		RateCents: r.RateCents(),
		CreatedAt: r.CreatedAt(),
	}
}
