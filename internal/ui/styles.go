package ui

import "fmt"

// ANSI256 color codes matching the Ayu palette.
const (
	colorCritical   = 167 // red, critical path
	colorOpen       = 74  // blue
	colorInProgress = 214 // orange
	colorBlocked    = 203 // salmon
	colorClosed     = 245 // medium gray
	colorMuted      = 245 // medium gray
	colorAccent     = 74  // blue
)

var noColor bool

func paint(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderCritical returns s in the critical path (red) color.
func RenderCritical(s string) string { return paint(colorCritical, s) }

// RenderStatus returns s colored by issue status string.
func RenderStatus(status, s string) string {
	switch status {
	case "open":
		return paint(colorOpen, s)
	case "in_progress":
		return paint(colorInProgress, s)
	case "blocked":
		return paint(colorBlocked, s)
	case "closed":
		return paint(colorClosed, s)
	default:
		return s
	}
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string { return paint(colorAccent, s) }

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string { return paint(colorMuted, s) }

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
