package elementlist

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/router"
	"github.com/abhisek/valenz/internal/settings"
)

func newScreen(t *testing.T) (*ElementListScreen, *settings.Store, *settings.MemoryRepo) {
	t.Helper()
	ds := elements.Default()
	repo := settings.NewMemoryRepo()
	store, err := settings.Load(context.Background(), repo, ds.IDs())
	require.NoError(t, err)
	return New(ds, store, nil), store, repo
}

func press(text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: []rune(text)[0], Text: text}
}

func TestElementList_RowsGroupedWithHeaders(t *testing.T) {
	s, store, _ := newScreen(t)

	var headers, elementRows int
	for _, r := range s.rows {
		if r.kind == rowGroupHeader {
			headers++
		} else {
			elementRows++
		}
	}
	assert.Equal(t, len(store.Items()), elementRows)
	assert.Greater(t, headers, 1)
	assert.Equal(t, rowGroupHeader, s.rows[0].kind)
	assert.Equal(t, rowElement, s.rows[s.cursor].kind, "cursor starts on an element")
}

func TestElementList_ToggleAndPersist(t *testing.T) {
	s, store, repo := newScreen(t)
	id := s.current().element.Symbol

	s.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})

	setting, _ := store.Get(id)
	assert.False(t, setting.Enabled)
	assert.Equal(t, 1, repo.Saves())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, setting.Enabled)
	assert.Equal(t, 2, repo.Saves())
}

func TestElementList_AllAndNone(t *testing.T) {
	s, store, _ := newScreen(t)

	s.Update(press("n"))
	assert.Equal(t, 0, store.EnabledCount())
	assert.Contains(t, s.View(100, 40), "0 of")

	s.Update(press("a"))
	assert.Equal(t, len(store.Items()), store.EnabledCount())
}

func TestElementList_NavigationSkipsHeaders(t *testing.T) {
	s, _, _ := newScreen(t)

	for i := 0; i < len(s.rows)*2; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
		require.Equal(t, rowElement, s.rows[s.cursor].kind)
	}
	last := s.cursor
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, last, s.cursor, "cursor stops at the last element")

	for i := 0; i < len(s.rows)*2; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	}
	assert.Equal(t, 1, s.cursor)
}

func TestElementList_GroupJumps(t *testing.T) {
	s, _, _ := newScreen(t)
	first := s.current().group

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	second := s.current().group
	assert.NotEqual(t, first, second)
	assert.Equal(t, rowGroupHeader, s.rows[s.cursor-1].kind, "lands on the first element of the group")

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, first, s.current().group)
}

func TestElementList_PersistFailure(t *testing.T) {
	s, _, repo := newScreen(t)
	repo.FailWith(errors.New("read-only"))

	s.Update(press("n"))
	assert.Contains(t, s.View(100, 40), "Could not save")

	repo.FailWith(nil)
	s.Update(press("a"))
	assert.NotContains(t, s.View(100, 40), "Could not save")
}

func TestElementList_Back(t *testing.T) {
	s, _, _ := newScreen(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestElementList_ViewScrollsToCursor(t *testing.T) {
	s, _, _ := newScreen(t)
	for i := 0; i < 30; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	name := s.current().element.Name
	assert.Contains(t, s.View(100, 12), name)
	assert.Greater(t, s.scrollOffset, 0)
}
