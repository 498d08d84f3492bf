// Package ui renders command output for dotkit.
package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles bound to one output writer.
type Styles struct {
	Bold    lipgloss.Style
	Dim     lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	DiffAdd    lipgloss.Style
	DiffDelete lipgloss.Style
	DiffHeader lipgloss.Style
}

// NewStyles creates styles for w. Colors follow the terminal's capabilities
// unless noColor is set.
func NewStyles(w io.Writer, noColor bool) Styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Bold: r.NewStyle().Bold(true),

		Dim: r.NewStyle().
			Foreground(lipgloss.Color("244")),

		Accent: r.NewStyle().
			Foreground(lipgloss.Color("39")),

		Success: r.NewStyle().
			Foreground(lipgloss.Color("40")),

		Warning: r.NewStyle().
			Foreground(lipgloss.Color("214")),

		Error: r.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),

		DiffAdd: r.NewStyle().
			Foreground(lipgloss.Color("40")),

		DiffDelete: r.NewStyle().
			Foreground(lipgloss.Color("196")),

		DiffHeader: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
	}
}
