package fs

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

// Stater implements ports.FileStater using os.Stat.
type Stater struct{}

var _ ports.FileStater = (*Stater)(nil)

// NewStater creates a new Stater.
func NewStater() *Stater {
	return &Stater{}
}

// ModTime returns the modification time of the file at path.
func (s *Stater) ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return time.Time{}, zerr.With(zerr.Wrap(domain.ErrFileNotFound, "source disappeared"), "path", path)
		}
		return time.Time{}, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return info.ModTime(), nil
}
