package ports

import "time"

// FileStater reports file modification times.
//
//go:generate mockgen -source=stater.go -destination=mocks/mock_stater.go -package=mocks
type FileStater interface {
	// ModTime returns the modification time of the file at path.
	ModTime(path string) (time.Time, error)
}
