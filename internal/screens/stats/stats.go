package stats

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/router"
	"github.com/abhisek/valenz/internal/screen"
	"github.com/abhisek/valenz/internal/settings"
	"github.com/abhisek/valenz/internal/ui/components"
	"github.com/abhisek/valenz/internal/ui/layout"
	"github.com/abhisek/valenz/internal/ui/theme"
)

// StatsScreen shows lifetime per-element statistics.
type StatsScreen struct {
	rows      []components.StatsRow
	worstTop  bool
	scroll    int
	maxScroll int
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen from the current settings.
func New(ds *elements.Dataset, store *settings.Store) *StatsScreen {
	return &StatsScreen{rows: components.StatsRows(ds, store.Items())}
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	order := "Worst first"
	if s.worstTop {
		order = "Table order"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "S", Description: order},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, components.KeyUp):
		s.scroll = max(s.scroll-1, 0)
	case key.Matches(kmsg, components.KeyDown):
		s.scroll = min(s.scroll+1, s.maxScroll)
	case key.Matches(kmsg, components.KeyBack):
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	switch kmsg.String() {
	case "s", "S":
		s.worstTop = !s.worstTop
		s.scroll = 0
	case "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// ordered returns the rows in display order, or the least accurate asked
// elements first.
func (s *StatsScreen) ordered() []components.StatsRow {
	if !s.worstTop {
		return s.rows
	}
	rows := slices.Clone(s.rows)
	slices.SortStableFunc(rows, func(a, b components.StatsRow) int {
		if (a.Stats.Times == 0) != (b.Stats.Times == 0) {
			if a.Stats.Times == 0 {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(a.Stats.Accuracy(), b.Stats.Accuracy()); c != 0 {
			return c
		}
		return cmp.Compare(b.Stats.Wrong, a.Stats.Wrong)
	})
	return rows
}

func (s *StatsScreen) View(width, height int) string {
	total := components.StatsTotals(s.rows)
	summary := theme.Body.Render(fmt.Sprintf("  Answers: %d   Right: %d   Wrong: %d   Accuracy: %s",
		total.Times, total.Right, total.Wrong, components.FormatAccuracy(total)))

	table := components.StatsTable(s.ordered(), min(width-4, 90))
	lines := strings.Split(table, "\n")

	// Keep the table header (top border, titles, separator) pinned.
	const pinned = 3
	visible := max(height-3, pinned+1)
	s.maxScroll = max(len(lines)-visible, 0)
	s.scroll = min(s.scroll, s.maxScroll)
	if s.scroll > 0 && len(lines) > pinned {
		body := lines[pinned+s.scroll:]
		lines = append(slices.Clone(lines[:pinned]), body...)
	}
	if len(lines) > visible {
		lines = lines[:visible]
	}

	return summary + "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}
