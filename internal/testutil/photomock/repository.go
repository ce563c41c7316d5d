package photomock

import (
	"context"
	"time"

	domain "github.com/Torteous44/santaCruzService/internal/domain/photo"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only set the functions a test needs; the rest default to harmless values.
type Repo struct {
	CreateFn           func(ctx context.Context, p *domain.Photo) error
	GetByPhotoIDFn     func(ctx context.Context, photoID string) (*domain.Photo, error)
	UpdateStatusFromFn func(ctx context.Context, photoID string, from, to domain.Status, approvedAt *time.Time) (bool, error)
	FindFn             func(ctx context.Context, f domain.Filter) ([]domain.Photo, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Photo) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPhotoID(ctx context.Context, photoID string) (*domain.Photo, error) {
	if m.GetByPhotoIDFn != nil {
		return m.GetByPhotoIDFn(ctx, photoID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) UpdateStatusFrom(ctx context.Context, photoID string, from, to domain.Status, approvedAt *time.Time) (bool, error) {
	if m.UpdateStatusFromFn != nil {
		return m.UpdateStatusFromFn(ctx, photoID, from, to, approvedAt)
	}
	return false, nil
}

func (m *Repo) Find(ctx context.Context, f domain.Filter) ([]domain.Photo, error) {
	if m.FindFn != nil {
		return m.FindFn(ctx, f)
	}
	return nil, nil
}
