package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookingDomain "github.com/Selam-Hotels/service-reservation/internal/domain/booking"
	"github.com/Selam-Hotels/service-reservation/pkg/domain"
)

// BookingModel is the GORM persistence model for the bookings table. The
// schema adds a room/interval exclusion constraint (see migrations) so a
// double booking cannot be committed even by writers that bypassed the
// in-process room lock.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	GuestID   uuid.UUID `gorm:"type:uuid;not null;index"`
	RoomID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CheckIn   time.Time `gorm:"type:date;not null"`
	CheckOut  time.Time `gorm:"type:date;not null"`
	Status    string    `gorm:"type:varchar(16);not null;default:'active'"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (BookingModel) TableName() string {
	return "bookings"
}

// BookingRepositoryImpl is the GORM-based implementation of BookingRepository.
type BookingRepositoryImpl struct {
	db *gorm.DB
}

// NewBookingRepository creates a new GORM-based booking repository.
func NewBookingRepository(db *gorm.DB) *BookingRepositoryImpl {
	return &BookingRepositoryImpl{db: db}
}

// FindByID retrieves a booking by its unique ID.
func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, err
	}
	return bookingToDomain(&model), nil
}

// ListAll retrieves bookings with pagination, newest first.
func (r *BookingRepositoryImpl) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = bookingToDomain(&models[i])
	}
	return bookings, total, nil
}

// FindOverlapping retrieves all active bookings intersecting [checkIn, checkOut).
func (r *BookingRepositoryImpl) FindOverlapping(ctx context.Context, checkIn, checkOut time.Time, excludeID uuid.UUID) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).
		Where("status = ?", string(bookingDomain.StatusActive)).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var models []BookingModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = bookingToDomain(&models[i])
	}
	return bookings, nil
}

// ExistsOverlap reports whether an active booking for roomID intersects
// [checkIn, checkOut).
func (r *BookingRepositoryImpl) ExistsOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("room_id = ?", roomID).
		Where("status = ?", string(bookingDomain.StatusActive)).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save persists a new booking. An exclusion-constraint violation from the
// database is the storage-level double-booking guard and surfaces as a
// conflict.
func (r *BookingRepositoryImpl) Save(ctx context.Context, booking *bookingDomain.Booking) error {
	model := bookingToModel(booking)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isPgViolation(err, pgExclusionViolation, pgUniqueViolation) {
			return domain.NewConflictError("room not available for the requested dates")
		}
		return err
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *BookingRepositoryImpl) Update(ctx context.Context, booking *bookingDomain.Booking) error {
	model := bookingToModel(booking)
	previousVersion := booking.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Select("GuestID", "RoomID", "CheckIn", "CheckOut", "Status", "Version", "UpdatedAt").
		Updates(model)

	if result.Error != nil {
		if isPgViolation(result.Error, pgExclusionViolation) {
			return domain.NewConflictError("room not available for the requested dates")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

func bookingToDomain(model *BookingModel) *bookingDomain.Booking {
	return bookingDomain.Reconstitute(
		model.ID,
		model.GuestID,
		model.RoomID,
		model.CheckIn,
		model.CheckOut,
		bookingDomain.Status(model.Status),
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func bookingToModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        b.ID(),
		GuestID:   b.GuestID(),
		RoomID:    b.RoomID(),
		CheckIn:   b.CheckIn(),
		CheckOut:  b.CheckOut(),
		Status:    string(b.Status()),
		Version:   b.Version(),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}
