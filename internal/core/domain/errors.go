package domain

import "go.trai.ch/zerr"

var (
	// ErrFileNotFound is returned when a logical path does not resolve to a readable file.
	ErrFileNotFound = zerr.New("file not found")

	// ErrPathEscape is returned when a logical path resolves outside every search root.
	// It wraps ErrFileNotFound so callers matching on either sentinel see it.
	ErrPathEscape = zerr.Wrap(ErrFileNotFound, "path escapes search roots")

	// ErrContentTypeMismatch is returned when a required unit's content type differs from the root's.
	ErrContentTypeMismatch = zerr.New("content type mismatch")

	// ErrCircularInclude is returned when an include chain reaches a unit that is still being built.
	ErrCircularInclude = zerr.New("circular include")

	// ErrTransformFailed is returned when a source transform fails.
	ErrTransformFailed = zerr.New("source transform failed")

	// ErrGraphLimitExceeded is returned when a pass exceeds its configured depth or unit ceiling.
	ErrGraphLimitExceeded = zerr.New("dependency graph limit exceeded")

	// ErrNoSearchPaths is returned when the configuration declares no search roots.
	ErrNoSearchPaths = zerr.New("no search paths configured")

	// ErrInvalidEngine is returned when an engine mapping names an unknown engine.
	ErrInvalidEngine = zerr.New("unknown engine")

	// ErrNoAssetsSpecified is returned when a command needs at least one logical path.
	ErrNoAssetsSpecified = zerr.New("no assets specified")

	// ErrCompileFailed is returned when compiling one or more assets fails.
	ErrCompileFailed = zerr.New("compile failed")

	// ErrStoreCreateFailed is returned when the asset store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create asset store directory")

	// ErrStoreReadFailed is returned when a stored asset cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read stored asset")

	// ErrStoreUnmarshalFailed is returned when a stored asset cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal stored asset")

	// ErrStoreMarshalFailed is returned when an asset cannot be encoded for storage.
	ErrStoreMarshalFailed = zerr.New("failed to marshal asset")

	// ErrStoreWriteFailed is returned when an asset cannot be written to the store.
	ErrStoreWriteFailed = zerr.New("failed to write asset")

	// ErrStoreDeleteFailed is returned when the asset store cannot be removed.
	ErrStoreDeleteFailed = zerr.New("failed to delete asset store")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file cannot be found.
	ErrConfigNotFound = zerr.New("could not find stitch.yaml")

	// ErrOutputWriteFailed is returned when a compiled asset cannot be written to the output directory.
	ErrOutputWriteFailed = zerr.New("failed to write compiled asset")
)
