package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the user leaves a prompt without confirming.
var ErrCancelled = errors.New("cancelled")

// PickerItem is one selectable variable.
type PickerItem struct {
	Key   string
	Value string
}

// PickerModel is a multi-select list of variables.
type PickerModel struct {
	title     string
	items     []PickerItem
	selected  []bool
	focused   int
	keys      KeyMap
	done      bool
	cancelled bool
}

// NewPickerModel creates a picker with every item selected.
func NewPickerModel(title string, items []PickerItem) PickerModel {
	selected := make([]bool, len(items))
	for i := range selected {
		selected[i] = true
	}
	return PickerModel{
		title:    title,
		items:    items,
		selected: selected,
		keys:     DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.focused > 0 {
			m.focused--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.focused < len(m.items)-1 {
			m.focused++
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		if m.focused < len(m.items) {
			m.selected[m.focused] = !m.selected[m.focused]
		}
	case key.Matches(keyMsg, m.keys.All):
		m.setAll(true)
	case key.Matches(keyMsg, m.keys.None):
		m.setAll(false)
	case key.Matches(keyMsg, m.keys.Enter):
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Quit):
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *PickerModel) setAll(v bool) {
	for i := range m.selected {
		m.selected[i] = v
	}
}

// View implements tea.Model.
func (m PickerModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(DimStyle.Render("[Space] toggle  [a] all  [n] none  [Enter] confirm  [Esc] cancel"))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(DimStyle.Render("No variables found."))
		b.WriteString("\n")
		return b.String()
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.focused {
			cursor = "▸ "
		}

		checkbox := "[ ]"
		if m.selected[i] {
			checkbox = "[✓]"
		}

		b.WriteString(cursor)
		switch {
		case i == m.focused:
			b.WriteString(FocusedStyle.Render(checkbox + " " + item.Key))
		case m.selected[i]:
			b.WriteString(SelectedStyle.Render(checkbox + " " + item.Key))
		default:
			b.WriteString(LabelStyle.Render(checkbox + " " + item.Key))
		}
		if item.Value != "" {
			b.WriteString(DimStyle.Render(" = " + item.Value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(DimStyle.Render(strconv.Itoa(len(m.Selected())) + "/" + strconv.Itoa(len(m.items)) + " variables selected"))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected keys in list order. The result is never nil.
func (m PickerModel) Selected() []string {
	keys := []string{}
	for i, item := range m.items {
		if m.selected[i] {
			keys = append(keys, item.Key)
		}
	}
	return keys
}

// Cancelled reports whether the user quit without confirming.
func (m PickerModel) Cancelled() bool {
	return m.cancelled
}

// RunPicker shows the picker and returns the chosen keys.
func RunPicker(title string, items []PickerItem, opts ...tea.ProgramOption) ([]string, error) {
	p := tea.NewProgram(NewPickerModel(title, items), opts...)
	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("variable picker failed: %w", err)
	}

	m := result.(PickerModel)
	if m.Cancelled() {
		return nil, ErrCancelled
	}
	return m.Selected(), nil
}
