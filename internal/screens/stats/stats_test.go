package stats

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/router"
	"github.com/abhisek/valenz/internal/settings"
)

func newScreen(t *testing.T) *StatsScreen {
	t.Helper()
	ds := elements.Default()
	repo := settings.NewMemoryRepo(
		settings.ItemSetting{ID: "H", Enabled: true, Stats: settings.Stats{Times: 4, Right: 4}},
		settings.ItemSetting{ID: "He", Enabled: true, Stats: settings.Stats{Times: 4, Right: 2, Wrong: 2}},
	)
	store, err := settings.Load(context.Background(), repo, ds.IDs())
	require.NoError(t, err)
	return New(ds, store)
}

func TestStatsScreen_View(t *testing.T) {
	s := newScreen(t)
	view := s.View(100, 80)
	assert.Contains(t, view, "Answers: 8")
	assert.Contains(t, view, "Accuracy: 75%")
	assert.Contains(t, view, "Hydrogen")
	assert.Contains(t, view, "50%")
}

func TestStatsScreen_WorstFirst(t *testing.T) {
	s := newScreen(t)
	assert.Equal(t, "H", s.ordered()[0].Symbol)

	s.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	rows := s.ordered()
	assert.Equal(t, "He", rows[0].Symbol)
	assert.Equal(t, "H", rows[1].Symbol)
	assert.Zero(t, rows[len(rows)-1].Stats.Times, "never asked elements go last")
}

func TestStatsScreen_Scroll(t *testing.T) {
	s := newScreen(t)
	s.View(100, 20)
	require.Greater(t, s.maxScroll, 0)

	for i := 0; i < s.maxScroll+5; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	assert.Equal(t, s.maxScroll, s.scroll)
	assert.NotContains(t, s.View(100, 20), "Hydrogen")

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, s.maxScroll-1, s.scroll)
}

func TestStatsScreen_Back(t *testing.T) {
	s := newScreen(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
