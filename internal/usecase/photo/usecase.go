package photo

import (
	"context"
	"fmt"
	"log"
	"time"

	domain "github.com/Torteous44/santaCruzService/internal/domain/photo"
	"github.com/Torteous44/santaCruzService/internal/imagehost"
	"github.com/Torteous44/santaCruzService/pkg/id"
)

// Remover releases a staged file once the submission is resolved.
type Remover interface {
	Remove(path string) error
}

// Usecase owns the photo lifecycle: submission (stage → host → record →
// release), the pending → approved|rejected state machine, and listing.
type Usecase struct {
	repo    domain.Repository
	host    imagehost.Host
	staging Remover
	now     func() time.Time
}

func NewUsecase(repo domain.Repository, host imagehost.Host, staging Remover) *Usecase {
	return &Usecase{repo: repo, host: host, staging: staging, now: func() time.Time { return time.Now().UTC() }}
}

// cleanup runs a deletion that sits off the primary success path: attempt,
// log on failure, never fail the parent operation.
func cleanup(what string, fn func() error) {
	if err := fn(); err != nil {
		log.Printf("cleanup: failed to %s: %v", what, err)
	}
}

// Submit turns a staged file plus metadata into a pending record, or
// guarantees no partial state is left behind. A record exists only if the
// image host durably accepted the upload.
func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*PhotoDTO, error) {
	if in.Contributor == "" || in.FloorID == "" {
		return nil, fmt.Errorf("%w: contributor and floor_id are required", domain.ErrInvalidInput)
	}
	// Format/size gate before any network call.
	if err := imagehost.ValidateFile(in.StagedPath); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	now := u.now()
	meta := imagehost.UploadMetadata{
		Contributor: in.Contributor,
		FloorID:     in.FloorID,
		RoomID:      in.RoomID,
		Date:        now.Format("Jan 2006"),
	}

	hostID, err := u.host.Store(ctx, in.StagedPath, meta)
	if err != nil {
		cleanup("remove staged file", func() error { return u.staging.Remove(in.StagedPath) })
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	p := &domain.Photo{
		PhotoID:          id.NewID32(),
		Contributor:      in.Contributor,
		Date:             meta.Date,
		FloorID:          in.FloorID,
		RoomID:           in.RoomID,
		ImageHostID:      hostID,
		ImageURL:         u.host.DeliveryURL(hostID, imagehost.VariantPublic),
		OriginalFileName: in.OriginalFileName,
		Status:           domain.StatusPending,
		SubmittedAt:      now,
	}
	if err := u.repo.Create(ctx, p); err != nil {
		// The hosted image is left in place on purpose: retrying the
		// record write is cheaper and safer than racing a host rollback.
		log.Printf("photo: record write failed after host upload, orphaned image %s: %v", hostID, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistenceFailed, err)
	}

	cleanup("remove staged file", func() error { return u.staging.Remove(in.StagedPath) })

	return toDTO(p), nil
}

// Approve moves a pending photo to approved. Any other starting state is
// rejected without mutating the record.
func (u *Usecase) Approve(ctx context.Context, photoID string) (*PhotoDTO, error) {
	now := u.now()
	ok, err := u.repo.UpdateStatusFrom(ctx, photoID, domain.StatusPending, domain.StatusApproved, &now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// The swap missed: either unknown id or the status already moved.
		p, err := u.repo.GetByPhotoID(ctx, photoID)
		if err != nil {
			return nil, err
		}
		switch p.Status {
		case domain.StatusApproved:
			return nil, domain.ErrAlreadyApproved
		case domain.StatusRejected:
			return nil, domain.ErrInvalidTransition
		}
		return nil, domain.ErrInvalidTransition
	}

	p, err := u.repo.GetByPhotoID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	return toDTO(p), nil
}

// Reject moves a pending photo to rejected and deletes the hosted image.
// Approved photos are not rejectable. The status swap lands first and the
// host delete runs only for the reject that won it, so a concurrent
// approve can never end up approved with its image already gone. The
// delete is attempted exactly once and is best-effort: a stuck remote
// image never blocks the local moderation decision. The record keeps its
// host id and URL for audit.
func (u *Usecase) Reject(ctx context.Context, photoID string) (*PhotoDTO, error) {
	ok, err := u.repo.UpdateStatusFrom(ctx, photoID, domain.StatusPending, domain.StatusRejected, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		// The swap missed: either unknown id or the status already moved.
		p, err := u.repo.GetByPhotoID(ctx, photoID)
		if err != nil {
			return nil, err
		}
		switch p.Status {
		case domain.StatusRejected:
			return nil, domain.ErrAlreadyRejected
		case domain.StatusApproved:
			return nil, domain.ErrInvalidTransition
		}
		return nil, domain.ErrInvalidTransition
	}

	p, err := u.repo.GetByPhotoID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	cleanup("delete hosted image "+p.ImageHostID, func() error { return u.host.Delete(ctx, p.ImageHostID) })

	return toDTO(p), nil
}

// List returns photos matching the filter, most recently submitted first.
func (u *Usecase) List(ctx context.Context, f ListFilter) ([]PhotoDTO, error) {
	var filter domain.Filter
	if f.Status != "" {
		st := domain.Status(f.Status)
		if !domain.ValidStatus(st) {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, f.Status)
		}
		filter.Status = &st
	}
	if f.FloorID != "" {
		floor := f.FloorID
		filter.FloorID = &floor
	}

	photos, err := u.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]PhotoDTO, 0, len(photos))
	for i := range photos {
		out = append(out, *toDTO(&photos[i]))
	}
	return out, nil
}

// SupportedFormats is a pass-through to the image host allow-list.
func (u *Usecase) SupportedFormats() []string {
	return imagehost.SupportedFormats()
}

func toDTO(p *domain.Photo) *PhotoDTO {
	return &PhotoDTO{
		PhotoID:          p.PhotoID,
		Contributor:      p.Contributor,
		Date:             p.Date,
		FloorID:          p.FloorID,
		RoomID:           p.RoomID,
		ImageHostID:      p.ImageHostID,
		ImageURL:         p.ImageURL,
		OriginalFileName: p.OriginalFileName,
		Status:           string(p.Status),
		SubmittedAt:      p.SubmittedAt,
		ApprovedAt:       p.ApprovedAt,
	}
}
