package photo

import "errors"

var (
	ErrNotFound     = errors.New("photo not found")
	ErrInvalidInput = errors.New("invalid input")

	// State-machine violations. Re-applying a transition is rejected,
	// never silently accepted.
	ErrAlreadyApproved   = errors.New("photo already approved")
	ErrAlreadyRejected   = errors.New("photo already rejected")
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUploadFailed: the image host rejected the file or was unreachable.
	// No record exists when this is returned.
	ErrUploadFailed = errors.New("image upload failed")

	// ErrPersistenceFailed: the host accepted the image but the record
	// write failed. The hosted image is intentionally left in place.
	ErrPersistenceFailed = errors.New("photo record persistence failed")
)
