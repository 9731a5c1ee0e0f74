package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/valenz/internal/router"
	"github.com/abhisek/valenz/internal/screen"
)

type homeStub struct{}

func (homeStub) Init() tea.Cmd                             { return nil }
func (h homeStub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return h, nil }
func (homeStub) View(int, int) string                      { return "home" }
func (homeStub) Title() string                             { return "Home" }

// splash returns a splash screen and a counter of how many home screens it
// built.
func splash() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return homeStub{}
	}), &built
}

func advance(w *WelcomeScreen, ticks int) {
	for range ticks {
		w.Update(tickMsg(time.Now()))
	}
}

func TestSplashPhases(t *testing.T) {
	tests := []struct {
		ticks    int
		electron bool
		tagline  bool
	}{
		{0, false, false},
		{4, false, false},
		{5, true, false},
		{14, true, false},
		{15, true, true},
	}
	for _, tt := range tests {
		w, _ := splash()
		advance(w, tt.ticks)
		view := w.View(80, 24)
		assert.Equal(t, tt.electron, strings.ContainsRune(view, '●'), "electron after %d ticks", tt.ticks)
		assert.Equal(t, tt.tagline, strings.Contains(view, "valences of the elements"), "tagline after %d ticks", tt.ticks)
	}
}

func TestElapsedStopsAtTotal(t *testing.T) {
	w, built := splash()
	advance(w, 60)
	assert.Equal(t, totalDur, w.elapsed)
	assert.Zero(t, *built, "the splash never leaves on its own")
}

func TestAnyKeyReplacesWithHome(t *testing.T) {
	w, built := splash()
	advance(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected ReplaceScreenMsg")
	assert.Equal(t, "Home", msg.Screen.Title())
	assert.Equal(t, 1, *built)

	_, cmd = w.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Nil(t, cmd, "a second key must not build another home screen")
	assert.Equal(t, 1, *built)

	_, cmd = w.Update(tickMsg(time.Now()))
	assert.Nil(t, cmd, "ticks stop once the splash has handed over")
}

func TestSplashHasNoTitle(t *testing.T) {
	w, _ := splash()
	assert.Empty(t, w.Title())
	assert.NotNil(t, w.Init())
}
