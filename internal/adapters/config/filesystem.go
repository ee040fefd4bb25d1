package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ProjectTree is the read-only view of the project the loader walks: it looks
// for stitch.yaml and expands search roots. Paths are absolute. With a nil FS
// the host filesystem is read; otherwise paths under Dir map onto FS names and
// anything outside Dir does not exist.
type ProjectTree struct {
	Dir string
	FS  fs.FS
}

// HostTree reads the operating system's filesystem.
func HostTree() ProjectTree {
	return ProjectTree{}
}

// MountTree serves fsys as if it were mounted at dir.
func MountTree(dir string, fsys fs.FS) ProjectTree {
	return ProjectTree{Dir: filepath.Clean(dir), FS: fsys}
}

// hasFile reports whether path names a regular file, not a directory.
func (t ProjectTree) hasFile(path string) bool {
	info, err := t.stat(path)
	return err == nil && !info.IsDir()
}

// hasDir reports whether path names a directory.
func (t ProjectTree) hasDir(path string) bool {
	info, err := t.stat(path)
	return err == nil && info.IsDir()
}

func (t ProjectTree) readFile(path string) ([]byte, error) {
	if t.FS == nil {
		// #nosec G304 -- path is a discovered stitch.yaml
		return os.ReadFile(path)
	}
	name, ok := t.name(path)
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: path, Err: fs.ErrNotExist}
	}
	return fs.ReadFile(t.FS, name)
}

// dirs expands pattern to the directories it matches, as absolute paths.
func (t ProjectTree) dirs(pattern string) ([]string, error) {
	var matches []string
	if t.FS == nil {
		found, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		matches = found
	} else {
		name, ok := t.name(pattern)
		if !ok {
			return nil, nil
		}
		found, err := fs.Glob(t.FS, name)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			matches = append(matches, filepath.Join(t.Dir, filepath.FromSlash(f)))
		}
	}

	out := matches[:0]
	for _, m := range matches {
		if t.hasDir(m) {
			out = append(out, filepath.Clean(m))
		}
	}
	return out, nil
}

func (t ProjectTree) stat(path string) (fs.FileInfo, error) {
	if t.FS == nil {
		return os.Stat(path)
	}
	name, ok := t.name(path)
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return fs.Stat(t.FS, name)
}

// name maps an absolute path under Dir to its fs.FS name.
func (t ProjectTree) name(path string) (string, bool) {
	rel, err := filepath.Rel(t.Dir, filepath.Clean(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
