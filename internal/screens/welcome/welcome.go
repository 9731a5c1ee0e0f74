package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/valenz/internal/router"
	"github.com/abhisek/valenz/internal/screen"
	"github.com/abhisek/valenz/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// Electron shells; the orbiting electron moves along the outer ring.
const atomArt = `      .  -  ~  -  .
   '      .-.      '
  :   - ( +  ) -   :
   .      '-'      .
      '  -  ~  -  '`

// orbit positions on the outer ring as (line, column).
var orbit = [][2]int{{0, 6}, {0, 12}, {1, 19}, {2, 20}, {3, 19}, {4, 12}, {4, 6}, {3, 3}, {2, 2}, {1, 3}}

type tickMsg time.Time

// WelcomeScreen shows a first-run splash animation before the home screen.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the animation.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

// renderAtom draws the atom with the electron at its current orbit position.
func (w *WelcomeScreen) renderAtom() string {
	lines := strings.Split(atomArt, "\n")
	if w.elapsed >= phase1End {
		pos := orbit[w.tickCount%len(orbit)]
		runes := []rune(lines[pos[0]])
		if pos[1] < len(runes) {
			runes[pos[1]] = '●'
			lines[pos[0]] = string(runes)
		}
	}

	shell := lipgloss.NewStyle().Foreground(theme.Primary)
	electron := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	for i, l := range lines {
		parts := strings.Split(l, "●")
		for j := range parts {
			parts[j] = shell.Render(parts[j])
		}
		lines[i] = strings.Join(parts, electron.Render("●"))
	}
	return strings.Join(lines, "\n")
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.renderAtom()}

	if w.elapsed >= phase2End {
		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("Learn the valences of the elements.")
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", RenderBanner(width), "", tagline, "", hint)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
