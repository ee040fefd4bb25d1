// Package style holds the colours and marks used by log lines and command reports.
package style

import "github.com/charmbracelet/lipgloss"

// Log level colours.
var (
	Slate  = lipgloss.Color("#667085")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Marks.
const (
	// Check marks an asset whose stored copy is current.
	Check = "✓"
	// Tilde marks an asset that needs recompiling.
	Tilde = "~"
	// Cross prefixes error log lines.
	Cross = "✗"
	// Warning prefixes warning log lines.
	Warning = "!"
)
