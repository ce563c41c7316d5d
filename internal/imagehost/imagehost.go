package imagehost

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// VariantPublic is the delivery variant served to clients.
	VariantPublic = "public"

	// MaxFileSize is the upload ceiling enforced before any network call.
	MaxFileSize = 10 << 20 // 10 MiB
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrFileTooLarge      = errors.New("file exceeds size limit")
)

// supportedExtensions is the format allow-list, lowercase with leading dot.
var supportedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// UploadMetadata travels with the binary to the image host.
type UploadMetadata struct {
	Contributor string `json:"contributor"`
	FloorID     string `json:"floorId"`
	RoomID      string `json:"roomId,omitempty"`
	Date        string `json:"date"`
}

// Host is the external CDN-backed image store. Store and Delete hit the
// network; DeliveryURL is a pure function of the host-assigned id.
type Host interface {
	Store(ctx context.Context, filePath string, meta UploadMetadata) (string, error)
	Delete(ctx context.Context, hostID string) error
	DeliveryURL(hostID, variant string) string
}

// SupportedFormats returns the extension allow-list.
func SupportedFormats() []string {
	out := make([]string, len(supportedExtensions))
	copy(out, supportedExtensions)
	return out
}

// ValidateFile checks the staged file against the format allow-list and the
// size ceiling. It never touches the network; callers run it before Store.
func ValidateFile(filePath string) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	supported := false
	for _, e := range supportedExtensions {
		if ext == e {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return err
	}
	if info.Size() > MaxFileSize {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, info.Size())
	}
	return nil
}
