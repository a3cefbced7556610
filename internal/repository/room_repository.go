package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	roomDomain "github.com/Selam-Hotels/service-reservation/internal/domain/room"
	"github.com/Selam-Hotels/service-reservation/pkg/domain"
)

// Postgres error codes translated to domain conflicts.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

func isPgViolation(err error, codes ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	for _, c := range codes {
		if pgErr.Code == c {
			return true
		}
	}
	return false
}

// RoomModel is the GORM persistence model for the rooms table.
type RoomModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Number    string    `gorm:"type:varchar(16);uniqueIndex;not null"`
	RoomType  string    `gorm:"type:varchar(64);not null"`
	RateCents int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (RoomModel) TableName() string {
	return "rooms"
}

// RoomRepositoryImpl is the GORM-based implementation of RoomRepository.
type RoomRepositoryImpl struct {
	db *gorm.DB
}

// NewRoomRepository creates a new GORM-based room repository.
func NewRoomRepository(db *gorm.DB) *RoomRepositoryImpl {
	return &RoomRepositoryImpl{db: db}
}

// FindByID retrieves a room by its unique ID.
func (r *RoomRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("room", id.String())
		}
		return nil, err
	}
	return roomToDomain(&model), nil
}

// FindByNumber retrieves a room by its unique room number.
func (r *RoomRepositoryImpl) FindByNumber(ctx context.Context, number string) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("room", number)
		}
		return nil, err
	}
	return roomToDomain(&model), nil
}

// ListAll retrieves all rooms ordered by room number.
func (r *RoomRepositoryImpl) ListAll(ctx context.Context) ([]*roomDomain.Room, error) {
	var models []RoomModel
	if err := r.db.WithContext(ctx).Order("number ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	rooms := make([]*roomDomain.Room, len(models))
	for i := range models {
		rooms[i] = roomToDomain(&models[i])
	}
	return rooms, nil
}

// Save persists a new room, translating duplicate numbers to a conflict.
func (r *RoomRepositoryImpl) Save(ctx context.Context, room *roomDomain.Room) error {
	model := roomToModel(room)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isPgViolation(err, pgUniqueViolation) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("room number already exists")
		}
		return err
	}
	return nil
}

func roomToDomain(model *RoomModel) *roomDomain.Room {
	return roomDomain.Reconstitute(model.ID, model.Number, model.RoomType, model.RateCents, model.CreatedAt)
}

func roomToModel(room *roomDomain.Room) *RoomModel {
	return &RoomModel{
		ID:        room.ID(),
		Number:    room.Number(),
		RoomType:  room.Type(),
		RateCents: room.RateCents(),
		CreatedAt: room.CreatedAt(),
	}
}
