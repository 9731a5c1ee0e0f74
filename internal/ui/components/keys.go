package components

import "charm.land/bubbles/v2/key"

// Shared navigation bindings.
var (
	KeyUp = key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	)
	KeyDown = key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	)
	KeySelect = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	)
	KeyBack = key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	)
	KeyToggle = key.NewBinding(
		key.WithKeys("space", " "),
		key.WithHelp("space", "toggle"),
	)
)

// ChoiceKeys selects answer options by number.
var ChoiceKeys = []key.Binding{
	key.NewBinding(key.WithKeys("1", "a"), key.WithHelp("1", "first")),
	key.NewBinding(key.WithKeys("2", "b"), key.WithHelp("2", "second")),
	key.NewBinding(key.WithKeys("3", "c"), key.WithHelp("3", "third")),
	key.NewBinding(key.WithKeys("4", "d"), key.WithHelp("4", "fourth")),
	key.NewBinding(key.WithKeys("5", "e"), key.WithHelp("5", "fifth")),
	key.NewBinding(key.WithKeys("6", "f"), key.WithHelp("6", "sixth")),
}

// KeyExplain asks for an explanation of the current element's valence.
var KeyExplain = key.NewBinding(
	key.WithKeys("?"),
	key.WithHelp("?", "explain"),
)
