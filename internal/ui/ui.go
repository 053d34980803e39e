// Package ui renders command output: styled status lines, plan previews,
// and a terminal spinner for long model calls. Rendering degrades to plain
// text when stdout is not a terminal.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	subjectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Success renders text in the success color.
func Success(text string) string { return successStyle.Render(text) }

// Warn renders text in the warning color.
func Warn(text string) string { return warnStyle.Render(text) }

// Error renders text in the error color.
func Error(text string) string { return errorStyle.Render(text) }

// Dim renders text dimmed.
func Dim(text string) string { return dimStyle.Render(text) }

// Heading renders a bold section heading.
func Heading(text string) string { return headingStyle.Render(text) }

// Subject renders a commit subject.
func Subject(text string) string { return subjectStyle.Render(text) }

// Interactive reports whether stderr is attached to a terminal, which
// gates the spinner and other animated output.
func Interactive() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
