package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/quiz"
	"github.com/abhisek/valenz/internal/router"
	"github.com/abhisek/valenz/internal/screen"
	"github.com/abhisek/valenz/internal/screens/elementlist"
	sessionscreen "github.com/abhisek/valenz/internal/screens/session"
	"github.com/abhisek/valenz/internal/screens/stats"
	"github.com/abhisek/valenz/internal/settings"
	"github.com/abhisek/valenz/internal/ui/components"
	"github.com/abhisek/valenz/internal/ui/layout"
)

// Deps are the collaborators the home screen hands to the screens it opens.
type Deps struct {
	Dataset   *elements.Dataset
	Settings  *settings.Store
	Explainer sessionscreen.Explainer

	// NewController creates the controller for a new test.
	NewController func() *quiz.Controller

	Log *zap.Logger
}

const (
	itemStart = iota
	itemElements
	itemStats
	itemQuit
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps     Deps
	menu     components.Menu
	enabled  int
	total    int
	answers  int
	accuracy string
	mascot   MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	h := &HomeScreen{deps: deps}

	items := []components.MenuItem{
		itemStart: {Label: "START TEST", Action: func() tea.Cmd {
			return push(h.NewTest())
		}},
		itemElements: {Label: "ELEMENTS", Action: func() tea.Cmd {
			return push(elementlist.New(deps.Dataset, deps.Settings, deps.Log))
		}},
		itemStats: {Label: "STATISTICS", Action: func() tea.Cmd {
			return push(stats.New(deps.Dataset, deps.Settings))
		}},
		itemQuit: {Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.refresh()
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// NewTest creates a test screen with a fresh controller.
func (h *HomeScreen) NewTest() screen.Screen {
	return sessionscreen.New(h.deps.NewController(), h.deps.Dataset, h.deps.Explainer, h.deps.Log)
}

// refresh recomputes the dashboard from the settings store.
func (h *HomeScreen) refresh() {
	rows := components.StatsRows(h.deps.Dataset, h.deps.Settings.Items())
	totals := components.StatsTotals(rows)

	h.enabled = h.deps.Settings.EnabledCount()
	h.total = len(rows)
	h.answers = totals.Times
	h.accuracy = components.FormatAccuracy(totals)
	h.mascot = mascotFor(h.enabled, totals.Times, totals.Accuracy())

	h.menu.Items[itemStart].Disabled = h.enabled == 0
	if h.menu.Items[h.menu.Selected].Disabled {
		h.menu = components.NewMenu(h.menu.Items)
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume refreshes counts after a test or a settings change.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; header and footer take six rows.
	termHeight := height + 6
	compact := layout.IsCompact(width, termHeight)
	tiny := termHeight < 24

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot, cw))
	}
	sections = append(sections, renderStatsBar(h.enabled, h.total, h.answers, h.accuracy, cw, compact))
	if h.deps.Explainer == nil || !h.deps.Explainer.Available() {
		sections = append(sections, renderLLMBanner(cw))
	}
	if tiny {
		sections = append(sections, renderMenuCompact(h.menu, cw))
	} else {
		sections = append(sections, renderMenu(h.menu, cw))
	}

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
