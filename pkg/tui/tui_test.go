package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m tea.Model, keys ...string) (tea.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(keyMsg(k))
	}
	return m, cmd
}

func items() []PickerItem {
	return []PickerItem{
		{Key: "DB_URL", Value: "postgres://localhost"},
		{Key: "DEBUG", Value: "true"},
		{Key: "PORT", Value: "3000"},
	}
}

func TestPickerStartsAllSelected(t *testing.T) {
	m := NewPickerModel("Variables", items())
	assert.Equal(t, []string{"DB_URL", "DEBUG", "PORT"}, m.Selected())
	assert.Contains(t, m.View(), "3/3 variables selected")
}

func TestPickerToggleAndNavigate(t *testing.T) {
	m, cmd := send(t, NewPickerModel("Variables", items()), "down", " ", "j", "j", "k", "up", " ")
	assert.Nil(t, cmd)

	picker := m.(PickerModel)
	assert.Equal(t, []string{"PORT"}, picker.Selected())
	assert.Contains(t, picker.View(), "1/3 variables selected")
}

func TestPickerAllNone(t *testing.T) {
	m, _ := send(t, NewPickerModel("Variables", items()), "n")
	assert.Equal(t, []string{}, m.(PickerModel).Selected())

	m, _ = send(t, m, "a")
	assert.Equal(t, []string{"DB_URL", "DEBUG", "PORT"}, m.(PickerModel).Selected())
}

func TestPickerConfirmAndCancel(t *testing.T) {
	m, cmd := send(t, NewPickerModel("Variables", items()), "enter")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.(PickerModel).Cancelled())
	assert.Empty(t, m.View())

	m, cmd = send(t, NewPickerModel("Variables", items()), "esc")
	require.NotNil(t, cmd)
	assert.True(t, m.(PickerModel).Cancelled())
}

func TestPickerEmpty(t *testing.T) {
	m, _ := send(t, NewPickerModel("Variables", nil), " ", "down")
	assert.Contains(t, m.View(), "No variables found.")
	assert.Equal(t, []string{}, m.(PickerModel).Selected())
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"y", true},
		{"Y", true},
		{"n", false},
		{"enter", false},
		{"esc", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, cmd := send(t, NewConfirmModel("Overwrite?"), tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, m.(ConfirmModel).Confirmed())
		})
	}
}

func TestConfirmIgnoresOtherKeys(t *testing.T) {
	m, cmd := send(t, NewConfirmModel("Overwrite?"), "x")
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Overwrite?")
	assert.Contains(t, m.View(), "[y/N]")
}
