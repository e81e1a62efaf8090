package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"dialogo/internal/config"
)

// KeyMap holds the keys the host handles itself. Everything else goes to the
// active view while a modal is open, and to the base view otherwise.
type KeyMap struct {
	Dismiss key.Binding // esc: close, or back with ui.escape = back
	Back    key.Binding // only enabled while the modal has history
	Quit    key.Binding
}

// DefaultKeyMap returns the host bindings for the given escape mode.
func DefaultKeyMap(escape string) KeyMap {
	desc := "close"
	if escape == config.EscapeBack {
		desc = "back"
	}
	return KeyMap{
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", desc),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "backspace"),
			key.WithHelp("←", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap. Disabled bindings are skipped by the
// help model.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Dismiss}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Back, k.Dismiss, k.Quit}}
}

func newHelpModel() help.Model {
	m := help.New()
	m.Styles.ShortKey = Styles.HelpKey
	m.Styles.ShortDesc = Styles.HelpDesc
	m.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	return m
}
