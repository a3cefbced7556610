package guest

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Directory answers guest existence queries. The guest lifecycle is owned by
// the guest service; this core only asks whether a referenced guest exists.
type Directory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Profile is the local read-model record mirrored from guest events.
type Profile struct {
	ID        uuid.UUID
	FullName  string
	Phone     string
	RemovedAt *time.Time
}

// ProfileRepository maintains the guest read model.
type ProfileRepository interface {
	Directory

	// Upsert inserts or refreshes a guest profile.
	Upsert(ctx context.Context, profile Profile) error

	// Remove marks a guest profile as removed without deleting the row.
	Remove(ctx context.Context, id uuid.UUID) error
}
