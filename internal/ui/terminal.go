package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ShouldUseColor decides whether the command renderers (tree, graph, pert,
// gantt, watch) may emit ANSI colors on stdout. Environment overrides win
// over TTY detection, in order:
//
//	NO_COLOR set          -> no color (https://no-color.org)
//	CLICOLOR_FORCE=1      -> color, even when piped
//	CLICOLOR=0            -> no color
//	otherwise             -> color only when stdout is a terminal
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}
