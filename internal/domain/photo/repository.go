package photo

import (
	"context"
	"time"
)

// Filter narrows List results. Nil fields are ignored; set fields are
// combined with AND.
type Filter struct {
	Status  *Status
	FloorID *string
}

type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByPhotoID(ctx context.Context, photoID string) (*Photo, error)

	// UpdateStatusFrom flips status from→to only if the row still holds
	// `from` (compare-and-swap; concurrent moderation must not silently
	// overwrite). approvedAt is written when non-nil. Returns false when
	// no row matched, either because the photo does not exist or because
	// its status already moved on — callers re-read to tell the two apart.
	UpdateStatusFrom(ctx context.Context, photoID string, from, to Status, approvedAt *time.Time) (bool, error)

	// Find returns photos matching f, most recently submitted first.
	Find(ctx context.Context, f Filter) ([]Photo, error)
}
