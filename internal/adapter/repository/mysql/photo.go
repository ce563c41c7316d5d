package mysql

import (
	"context"
	"errors"
	"time"

	photoDomain "github.com/Torteous44/santaCruzService/internal/domain/photo"

	"gorm.io/gorm"
)

type PhotoRepository struct{ db *gorm.DB }

func NewPhotoRepository(db *gorm.DB) *PhotoRepository { return &PhotoRepository{db: db} }

func (r *PhotoRepository) Create(ctx context.Context, p *photoDomain.Photo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PhotoRepository) GetByPhotoID(ctx context.Context, photoID string) (*photoDomain.Photo, error) {
	var out photoDomain.Photo
	res := r.db.WithContext(ctx).Where("photo_id = ?", photoID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, photoDomain.ErrNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

// UpdateStatusFrom is the conditional write the moderation state machine
// relies on: the UPDATE carries the expected prior status in its WHERE
// clause, so a racing transition loses by matching zero rows instead of
// overwriting the winner.
func (r *PhotoRepository) UpdateStatusFrom(ctx context.Context, photoID string, from, to photoDomain.Status, approvedAt *time.Time) (bool, error) {
	updates := map[string]any{
		"status":     to,
		"updated_at": time.Now().UTC(),
	}
	if approvedAt != nil {
		updates["approved_at"] = approvedAt.UTC()
	}
	res := r.db.WithContext(ctx).
		Model(&photoDomain.Photo{}).
		Where("photo_id = ? AND status = ?", photoID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PhotoRepository) Find(ctx context.Context, f photoDomain.Filter) ([]photoDomain.Photo, error) {
	q := r.db.WithContext(ctx).Model(&photoDomain.Photo{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.FloorID != nil {
		q = q.Where("floor_id = ?", *f.FloorID)
	}
	var out []photoDomain.Photo
	if err := q.Order("submitted_at DESC, id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
