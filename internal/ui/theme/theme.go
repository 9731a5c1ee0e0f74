package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/valenz/internal/elements"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Highlight = lipgloss.Color("#FACC15") // Yellow
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Element group colors, loosely following periodic table posters.
var groupColors = map[elements.Group]color.Color{
	elements.GroupAlkaliMetal:         lipgloss.Color("#F87171"),
	elements.GroupAlkalineEarthMetal:  lipgloss.Color("#FB923C"),
	elements.GroupTransitionMetal:     lipgloss.Color("#FBBF24"),
	elements.GroupPostTransitionMetal: lipgloss.Color("#A3E635"),
	elements.GroupMetalloid:           lipgloss.Color("#2DD4BF"),
	elements.GroupNonmetal:            lipgloss.Color("#60A5FA"),
	elements.GroupHalogen:             lipgloss.Color("#C084FC"),
	elements.GroupNobleGas:            lipgloss.Color("#F472B6"),
}

// GroupColor returns the accent color of an element group.
func GroupColor(g elements.Group) color.Color {
	if c, ok := groupColors[g]; ok {
		return c
	}
	return Text
}

// Symbol renders an element symbol as a colored tile.
func Symbol(symbol string, g elements.Group) string {
	return lipgloss.NewStyle().
		Foreground(BgDark).
		Background(GroupColor(g)).
		Bold(true).
		Padding(1, 3).
		Render(symbol)
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)
)

// Components
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	ButtonActive = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Highlight).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Highlight).
			Padding(0, 1)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1)
)
