package ui

import (
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func newHelpModel() help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	h.Styles.ShortDesc = Styles.Hint
	h.Styles.ShortSeparator = Styles.Hint
	return h
}

// RenderKeybindHelp produces the transient help box shown after SPC.
// Returns "" when not in leader mode.
func RenderKeybindHelp(h *KeyHandler) string {
	if h == nil || !h.LeaderWaiting {
		return ""
	}
	currentSeq := h.CurrentSeq()
	hints := h.Registry.LeaderHints(currentSeq)
	if len(hints) == 0 {
		return ""
	}

	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, hints[k]),
		))
	}
	bindings = append(bindings, key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1)

	content := Styles.Hint.Render(currentSeq) + " " + newHelpModel().ShortHelpView(bindings)
	return boxStyle.Render(content)
}

// RenderFooter renders the one-line list key help.
func RenderFooter(width int) string {
	h := newHelpModel()
	h.Width = width
	return h.View(listKeys)
}
