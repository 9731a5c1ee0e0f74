package elementlist

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/router"
	"github.com/abhisek/valenz/internal/screen"
	"github.com/abhisek/valenz/internal/settings"
	"github.com/abhisek/valenz/internal/ui/components"
	"github.com/abhisek/valenz/internal/ui/layout"
	"github.com/abhisek/valenz/internal/ui/theme"
)

type rowKind int

const (
	rowGroupHeader rowKind = iota
	rowElement
)

type row struct {
	kind    rowKind
	group   elements.Group
	element elements.Element
	setting *settings.ItemSetting
}

// ElementListScreen lets the user choose which elements are asked.
type ElementListScreen struct {
	store        *settings.Store
	log          *zap.Logger
	rows         []row
	cursor       int
	scrollOffset int
	errMsg       string
}

var _ screen.Screen = (*ElementListScreen)(nil)
var _ screen.KeyHintProvider = (*ElementListScreen)(nil)

// New creates an ElementListScreen over the elements of ds that have a
// setting in store, grouped by element group.
func New(ds *elements.Dataset, store *settings.Store, log *zap.Logger) *ElementListScreen {
	if log == nil {
		log = zap.NewNop()
	}

	byGroup := make(map[elements.Group][]row)
	for _, el := range ds.All() {
		setting, ok := store.Get(el.Symbol)
		if !ok {
			continue
		}
		byGroup[el.Group] = append(byGroup[el.Group], row{kind: rowElement, group: el.Group, element: el, setting: setting})
	}

	var rows []row
	for _, g := range elements.AllGroups {
		if len(byGroup[g]) == 0 {
			continue
		}
		rows = append(rows, row{kind: rowGroupHeader, group: g})
		rows = append(rows, byGroup[g]...)
	}

	s := &ElementListScreen{store: store, log: log, rows: rows}
	for i, r := range s.rows {
		if r.kind == rowElement {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *ElementListScreen) Init() tea.Cmd {
	return nil
}

func (s *ElementListScreen) Title() string {
	return "Elements"
}

// KeyHints returns the key binding hints for the footer.
func (s *ElementListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "A/N", Description: "All/None"},
		{Key: "Tab", Description: "Group"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ElementListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, components.KeyUp):
		s.moveCursor(-1)
	case key.Matches(kmsg, components.KeyDown):
		s.moveCursor(1)
	case key.Matches(kmsg, components.KeyToggle, components.KeySelect):
		if r := s.current(); r != nil {
			r.setting.Enabled = !r.setting.Enabled
			s.persist()
		}
	case key.Matches(kmsg, components.KeyBack):
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch kmsg.String() {
	case "a":
		s.store.SetAllEnabled(true)
		s.persist()
	case "n":
		s.store.SetAllEnabled(false)
		s.persist()
	case "tab":
		s.nextGroup()
	case "shift+tab":
		s.prevGroup()
	case "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ElementListScreen) persist() {
	if err := s.store.Persist(context.Background()); err != nil {
		s.log.Warn("persist element settings", zap.Error(err))
		s.errMsg = "Could not save: " + err.Error()
		return
	}
	s.errMsg = ""
}

func (s *ElementListScreen) current() *row {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].kind != rowElement {
		return nil
	}
	return &s.rows[s.cursor]
}

// moveCursor moves the cursor by delta, skipping group headers.
func (s *ElementListScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowElement {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextGroup jumps the cursor to the first element of the next group.
func (s *ElementListScreen) nextGroup() {
	r := s.current()
	if r == nil {
		return
	}
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowElement && s.rows[i].group != r.group {
			s.cursor = i
			return
		}
	}
}

// prevGroup jumps the cursor to the first element of the previous group.
func (s *ElementListScreen) prevGroup() {
	r := s.current()
	if r == nil {
		return
	}
	var prev elements.Group
	found := false
	for i := s.cursor - 1; i >= 0; i-- {
		if s.rows[i].kind == rowGroupHeader && s.rows[i].group != r.group {
			prev = s.rows[i].group
			found = true
			break
		}
	}
	if !found {
		return
	}
	for i, row := range s.rows {
		if row.kind == rowElement && row.group == prev {
			s.cursor = i
			return
		}
	}
}

// adjustScroll keeps the cursor and its group header inside the viewport.
func (s *ElementListScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowGroupHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *ElementListScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\nNo elements available.")
	}

	status := theme.Hint.Render(fmt.Sprintf("  %d of %d enabled", s.store.EnabledCount(), len(s.store.Items())))
	if s.errMsg != "" {
		status = lipgloss.NewStyle().Foreground(theme.Error).Render("  " + s.errMsg)
	}

	listHeight := max(height-2, 1)
	s.adjustScroll(listHeight)

	lines := []string{status, ""}
	for i := s.scrollOffset; i < len(s.rows) && i < s.scrollOffset+listHeight; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowGroupHeader:
			lines = append(lines, renderGroupHeader(r.group, width))
		case rowElement:
			lines = append(lines, renderElementRow(r, i == s.cursor, width))
		}
	}
	return strings.Join(lines, "\n")
}

func renderGroupHeader(g elements.Group, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.GroupColor(g)).
		Bold(true).
		Width(width).
		Padding(0, 0, 0, 2).
		Render(strings.ToUpper(g.DisplayName()))
}

func renderElementRow(r row, selected bool, width int) string {
	box := "[ ]"
	if r.setting.Enabled {
		box = "[x]"
	}

	cursor := "  "
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if !r.setting.Enabled {
		nameStyle = nameStyle.Foreground(theme.TextDim)
	}
	if selected {
		cursor = "▸ "
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}

	symbol := lipgloss.NewStyle().Foreground(theme.GroupColor(r.group)).Bold(true).
		Render(fmt.Sprintf("%-3s", r.element.Symbol))
	accuracy := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%5s", components.FormatAccuracy(r.setting.Stats)))

	nameWidth := max(width-28, 10)
	name := r.element.Name
	if len(name) > nameWidth {
		name = name[:nameWidth-1] + "…"
	}

	return fmt.Sprintf("    %s%s %s  %s %s",
		cursor, nameStyle.Render(box), symbol,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)), accuracy)
}
