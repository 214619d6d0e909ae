package ui

import (
	"strings"

	"clinicdash/internal/roster"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AddEntityModal asks for the name of a new entry in one list.
type AddEntityModal struct {
	Kind  roster.Kind
	input textinput.Model
}

// Ensure AddEntityModal implements View.
var _ View = (*AddEntityModal)(nil)

// NewAddEntityModal creates a modal for adding to the given list.
func NewAddEntityModal(kind roster.Kind) *AddEntityModal {
	ti := textinput.New()
	ti.Placeholder = "name"
	ti.Width = 40
	ti.CharLimit = 120
	ti.Focus()
	return &AddEntityModal{Kind: kind, input: ti}
}

// Init implements View.
func (m *AddEntityModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *AddEntityModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				return m, nil
			}
			kind := m.Kind
			return m, func() tea.Msg { return AddEntityMsg{Kind: kind, Name: name} }
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *AddEntityModal) View() string {
	title := "Add doctor"
	if m.Kind == roster.KindPatients {
		title = "Add patient"
	}
	content := Styles.Title.Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += Styles.Hint.Render("Enter: add  Esc: cancel")
	return Styles.Box.Render(content)
}
