package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	guestDomain "github.com/Selam-Hotels/service-reservation/internal/domain/guest"
)

// GuestProfileModel is the GORM model for the guest read model, mirrored
// from guest directory events.
type GuestProfileModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName  string     `gorm:"type:varchar(128)"`
	Phone     string     `gorm:"type:varchar(32)"`
	RemovedAt *time.Time `gorm:"type:timestamptz"`
	CreatedAt time.Time  `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt time.Time  `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (GuestProfileModel) TableName() string {
	return "guest_profiles"
}

// GuestProfileRepositoryImpl is the GORM-based guest read model.
type GuestProfileRepositoryImpl struct {
	db *gorm.DB
}

// NewGuestProfileRepository creates a new GORM-based guest profile repository.
func NewGuestProfileRepository(db *gorm.DB) *GuestProfileRepositoryImpl {
	return &GuestProfileRepositoryImpl{db: db}
}

// Exists reports whether a non-removed guest profile exists.
func (r *GuestProfileRepositoryImpl) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&GuestProfileModel{}).
		Where("id = ? AND removed_at IS NULL", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Upsert inserts or refreshes a guest profile, clearing any removal mark.
func (r *GuestProfileRepositoryImpl) Upsert(ctx context.Context, profile guestDomain.Profile) error {
	now := time.Now().UTC()
	model := GuestProfileModel{
		ID:        profile.ID,
		FullName:  profile.FullName,
		Phone:     profile.Phone,
		RemovedAt: nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "phone", "removed_at", "updated_at"}),
	}).Create(&model).Error
}

// Remove marks a guest profile as removed without deleting the row.
func (r *GuestProfileRepositoryImpl) Remove(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&GuestProfileModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"removed_at": now, "updated_at": now}).Error
}
