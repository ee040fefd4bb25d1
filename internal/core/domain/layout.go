package domain

import "path/filepath"

const (
	// StitchDirName is the name of the internal workspace directory.
	StitchDirName = ".stitch"

	// StoreDirName is the name of the compiled asset store directory.
	StoreDirName = "store"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "stitch.yaml"

	// DefaultOutputDir is the compile output directory used when the config names none.
	DefaultOutputDir = "public/assets"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultStitchPath returns the default root directory for stitch metadata.
func DefaultStitchPath() string {
	return StitchDirName
}

// DefaultStorePath returns the default path for the compiled asset store.
// It joins .stitch and store.
func DefaultStorePath() string {
	return filepath.Join(StitchDirName, StoreDirName)
}
