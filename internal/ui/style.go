package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	highPriorityStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mediumPriorityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	lowPriorityStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	doneStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mutedStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	headingStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
)

// ansiEnabled is swapped out in tests.
var ansiEnabled = stdoutSupportsANSI

func stdoutSupportsANSI() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func render(style lipgloss.Style, value string) string {
	if value == "" || !ansiEnabled() {
		return value
	}
	return style.Render(value)
}

// Priority colors a priority label by urgency: "high", "medium" or "low".
func Priority(value string) string {
	switch value {
	case "high":
		return render(highPriorityStyle, value)
	case "medium":
		return render(mediumPriorityStyle, value)
	case "low":
		return render(lowPriorityStyle, value)
	default:
		return value
	}
}

// Checkbox returns "[x]" or "[ ]".
func Checkbox(checked bool) string {
	if checked {
		return render(doneStyle, "[x]")
	}
	return "[ ]"
}

// Muted renders secondary text.
func Muted(value string) string {
	return render(mutedStyle, value)
}

// Heading renders a section title.
func Heading(value string) string {
	return render(headingStyle, value)
}

// TerminalWidth returns the width of stdout, or zero when stdout is not a
// terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
