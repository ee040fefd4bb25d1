package config

// Stitchfile represents the structure of the stitch.yaml configuration file.
type Stitchfile struct {
	Version      string            `yaml:"version"`
	Root         string            `yaml:"root"`
	Paths        []string          `yaml:"paths"`
	Output       string            `yaml:"output"`
	Engines      map[string]string `yaml:"engines"`
	ContentTypes map[string]string `yaml:"content_types"`
	Limits       LimitsDTO         `yaml:"limits"`
	Cache        CacheDTO          `yaml:"cache"`
}

// LimitsDTO holds the per-pass ceilings. Zero selects the default, a negative
// value disables the ceiling.
type LimitsDTO struct {
	MaxDepth int `yaml:"max_depth"`
	MaxUnits int `yaml:"max_units"`
}

// CacheDTO configures the in-memory asset cache.
type CacheDTO struct {
	Size int `yaml:"size"`
}
