package ports

// Hasher derives stable cache keys.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// CacheKey returns a key identifying a compile of logicalPath against the given search roots.
	CacheKey(logicalPath string, roots []string) string
}
