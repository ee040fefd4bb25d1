package domain

const (
	// DefaultMaxDepth bounds how deep a directive chain may nest.
	DefaultMaxDepth = 64

	// DefaultMaxUnits bounds how many units a single pass may load.
	DefaultMaxUnits = 4096

	// DefaultCacheSize is the number of compiled assets kept in memory.
	DefaultCacheSize = 128
)

// Limits are the ceilings applied to a single resolve pass. Zero means unlimited.
type Limits struct {
	MaxDepth int
	MaxUnits int
}

// DefaultLimits returns the limits used when the configuration sets none.
func DefaultLimits() Limits {
	return Limits{MaxDepth: DefaultMaxDepth, MaxUnits: DefaultMaxUnits}
}

// Config is the resolved project configuration.
type Config struct {
	// Root is the directory containing stitch.yaml.
	Root string
	// Paths are the absolute search roots, in lookup order.
	Paths []string
	// OutputDir is the absolute compile output directory.
	OutputDir string
	// Engines maps an engine extension (without the dot) to an engine name.
	Engines map[string]string
	// ContentTypes maps a format extension to a MIME type, overriding the defaults.
	ContentTypes map[string]string
	// Limits are the per-pass ceilings.
	Limits Limits
	// CacheSize is the number of compiled assets kept in memory.
	CacheSize int
}
