package tui

import "github.com/charmbracelet/lipgloss"

// Styles for the prompts.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	FocusedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)
