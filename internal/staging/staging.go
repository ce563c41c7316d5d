package staging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stager writes incoming uploads into a local staging directory before
// they are handed to the image host. Names carry a timestamp plus a random
// suffix, so concurrent uploads never collide and each upload owns exactly
// one file.
type Stager struct {
	dir string
}

func New(dir string) (*Stager, error) {
	if dir == "" {
		return nil, fmt.Errorf("staging dir is empty")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Stager{dir: dir}, nil
}

// Stage copies src to a uniquely named file and returns its path. The
// original file's extension is preserved (lowercased) so format checks
// downstream see it.
func (s *Stager) Stage(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString(), ext)
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", err
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Remove deletes a staged file. A file that is already gone is not an
// error.
func (s *Stager) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
