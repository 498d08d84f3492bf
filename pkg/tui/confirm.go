package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel is a yes/no confirmation prompt.
type ConfirmModel struct {
	question  string
	confirmed bool
	done      bool
}

// NewConfirmModel creates a prompt for question.
func NewConfirmModel(question string) ConfirmModel {
	return ConfirmModel{question: question}
}

// Init implements tea.Model.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "N", "enter", "esc", "q", "ctrl+c":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s ",
		TitleStyle.Render(m.question),
		DimStyle.Render("[y/N]"),
	)
}

// Confirmed reports whether the user answered yes.
func (m ConfirmModel) Confirmed() bool {
	return m.confirmed
}

// RunConfirm displays a confirmation prompt and returns the user's choice.
func RunConfirm(question string, opts ...tea.ProgramOption) (bool, error) {
	p := tea.NewProgram(NewConfirmModel(question), opts...)
	result, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirm dialog failed: %w", err)
	}
	return result.(ConfirmModel).Confirmed(), nil
}
