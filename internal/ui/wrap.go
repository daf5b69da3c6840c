package ui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// DefaultWrapWidth is used when the terminal width is unknown.
const DefaultWrapWidth = 80

// Wrap word-wraps value to width, keeping existing line breaks. A
// non-positive width uses the terminal width.
func Wrap(value string, width int) string {
	if width <= 0 {
		width = TerminalWidth()
	}
	if width <= 0 {
		width = DefaultWrapWidth
	}
	lines := strings.Split(value, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(wordwrap.String(line, width), " ")
	}
	return strings.Join(lines, "\n")
}
