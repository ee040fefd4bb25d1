package ports

// PathResolver maps a logical path to an absolute file path inside the search roots.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type PathResolver interface {
	// Resolve returns the absolute path for logicalPath.
	// When fromDir is non-empty it is consulted before the search roots.
	// Paths that resolve outside every root fail with domain.ErrPathEscape,
	// and missing files with domain.ErrFileNotFound.
	Resolve(logicalPath, fromDir string) (string, error)
}
