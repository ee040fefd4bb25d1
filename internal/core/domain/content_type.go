package domain

import "maps"

// DefaultContentType is used for format extensions with no known MIME type.
const DefaultContentType = "application/octet-stream"

var defaultContentTypes = map[string]string{
	".css":  "text/css",
	".htm":  "text/html",
	".html": "text/html",
	".js":   "application/javascript",
	".json": "application/json",
	".mjs":  "application/javascript",
	".svg":  "image/svg+xml",
	".txt":  "text/plain",
	".xml":  "application/xml",
}

// DefaultContentTypes returns a copy of the built-in format extension table.
func DefaultContentTypes() map[string]string {
	return maps.Clone(defaultContentTypes)
}

// ContentTypeFor returns the MIME type for a format extension.
// Overrides take precedence over the built-in table.
func ContentTypeFor(ext string, overrides map[string]string) string {
	if ct, ok := overrides[ext]; ok {
		return ct
	}
	if ct, ok := defaultContentTypes[ext]; ok {
		return ct
	}
	return DefaultContentType
}
