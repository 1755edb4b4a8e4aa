package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
)

// Text fragments
const (
	LogLineSeparator    = "\n"
	ProgressLabelFormat = "%d%%"
	TotalLabelFormat    = "Total: %d%%"
)

// Layout sizing
const (
	URLEntryMinHeight float32 = 110
	LogPaneMinHeight  float32 = 160
)

// Log pane behavior
const (
	// MaxLogLines bounds the log pane; the oldest lines are dropped once a
	// long session exceeds it.
	MaxLogLines = 2000
)
