package fs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.PathResolver = (*Resolver)(nil)

// Resolver maps logical paths to files under an ordered list of search roots.
// A logical path may omit trailing engine extensions: "users.js" finds "users.js.tmpl".
type Resolver struct {
	roots     []string
	realRoots []string
	engines   map[string]struct{}
}

// NewResolver creates a Resolver over the given roots.
// engineExts are extensions without the dot that may trail a logical path's own extension.
func NewResolver(roots []string, engineExts []string) (*Resolver, error) {
	if len(roots) == 0 {
		return nil, domain.ErrNoSearchPaths
	}

	r := &Resolver{
		roots:     make([]string, 0, len(roots)),
		realRoots: make([]string, 0, len(roots)),
		engines:   make(map[string]struct{}, len(engineExts)),
	}

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve search root"), "root", root)
		}
		r.roots = append(r.roots, abs)

		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			resolved = abs
		}
		r.realRoots = append(r.realRoots, resolved)
	}

	for _, ext := range engineExts {
		r.engines[strings.TrimPrefix(ext, ".")] = struct{}{}
	}

	return r, nil
}

// Roots returns the absolute search roots in lookup order.
func (r *Resolver) Roots() []string {
	return slices.Clone(r.roots)
}

// Resolve returns the absolute path for logicalPath.
// Paths starting with "./" or "../" are looked up in fromDir only. Other paths are
// looked up in fromDir first, then in every root in order. A candidate outside every
// root is never returned.
func (r *Resolver) Resolve(logicalPath, fromDir string) (string, error) {
	if logicalPath == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrFileNotFound, "empty logical path"), "from", fromDir)
	}

	escaped := false
	for _, base := range r.bases(logicalPath, fromDir) {
		candidate := filepath.Join(base, filepath.FromSlash(logicalPath))
		if !within(r.roots, candidate) {
			escaped = true
			continue
		}

		path, ok := r.lookup(candidate)
		if !ok {
			continue
		}

		if resolved, err := filepath.EvalSymlinks(path); err == nil && !within(r.realRoots, resolved) {
			escaped = true
			continue
		}

		return path, nil
	}

	if escaped {
		return "", zerr.With(zerr.Wrap(domain.ErrPathEscape, "refusing to resolve outside search roots"), "logical_path", logicalPath)
	}
	return "", zerr.With(zerr.Wrap(domain.ErrFileNotFound, "no file matches logical path"), "logical_path", logicalPath)
}

func (r *Resolver) bases(logicalPath, fromDir string) []string {
	if filepath.IsAbs(logicalPath) {
		return []string{""}
	}

	relative := strings.HasPrefix(logicalPath, "./") || strings.HasPrefix(logicalPath, "../")
	if fromDir == "" {
		return r.roots
	}
	if relative {
		return []string{fromDir}
	}
	return append([]string{fromDir}, r.roots...)
}

// lookup finds the file for candidate, trying the exact name first and then
// names that add only engine extensions. A candidate with no extension also
// matches any single format extension.
func (r *Resolver) lookup(candidate string) (string, bool) {
	if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
		return candidate, true
	}

	dir, base := filepath.Split(candidate)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	anyFormat := filepath.Ext(base) == ""
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, base+".") {
			continue
		}

		parts := strings.Split(name[len(base)+1:], ".")
		if anyFormat {
			parts = parts[1:]
		}
		if r.allEngines(parts) {
			return filepath.Join(dir, name), true
		}
	}

	return "", false
}

func (r *Resolver) allEngines(exts []string) bool {
	for _, ext := range exts {
		if _, ok := r.engines[ext]; !ok {
			return false
		}
	}
	return true
}

// within reports whether path lies inside any of the roots.
func within(roots []string, path string) bool {
	for _, root := range roots {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}
