package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/quiz"
	"github.com/abhisek/valenz/internal/settings"
)

func press(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func testQuestion() *quiz.Question {
	return &quiz.Question{
		ID:     "Fe",
		Prompt: "Fe",
		Answers: []quiz.Answer{
			{Value: "I"},
			{Value: "II, III", Correct: true},
			{Value: "IV"},
		},
	}
}

func chosen(t *testing.T, cmd tea.Cmd) ChosenMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(ChosenMsg)
	require.True(t, ok, "expected ChosenMsg")
	return msg
}

func TestMenu_NavigationSkipsDisabled(t *testing.T) {
	var fired string
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B", Action: func() tea.Cmd { fired = "B"; return nil }},
		{Label: "C", Disabled: true},
		{Label: "D", Action: func() tea.Cmd { fired = "D"; return nil }},
	})
	assert.Equal(t, 1, m.Selected)

	m, _ = m.Update(press(tea.KeyDown, ""))
	assert.Equal(t, 3, m.Selected)

	m, _ = m.Update(press(tea.KeyDown, ""))
	assert.Equal(t, 3, m.Selected, "stays on last enabled item")

	m, _ = m.Update(press(tea.KeyEnter, ""))
	assert.Equal(t, "D", fired)

	m, _ = m.Update(press('k', "k"))
	assert.Equal(t, 1, m.Selected)
}

func TestMenu_View(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "START"}, {Label: "QUIT"}})
	view := m.View(20)
	assert.Contains(t, view, "▸ START")
	assert.Contains(t, view, "QUIT")
}

func TestMultiChoice_WrongPickIsEliminated(t *testing.T) {
	m := NewMultiChoice(testQuestion())

	m, cmd := m.Update(press('1', "1"))
	msg := chosen(t, cmd)
	assert.Equal(t, 0, msg.Index)
	assert.False(t, msg.Answer.Correct)
	assert.True(t, m.Eliminated[0])
	assert.False(t, m.Solved)
	assert.Equal(t, 1, m.Selected, "cursor moves off the eliminated option")

	// Picking it again does nothing.
	m, cmd = m.Update(press('1', "1"))
	assert.Nil(t, cmd)

	m, cmd = m.Update(press('b', "b"))
	msg = chosen(t, cmd)
	assert.True(t, msg.Answer.Correct)
	assert.True(t, m.Solved)

	// Solved selectors ignore keys.
	_, cmd = m.Update(press('3', "3"))
	assert.Nil(t, cmd)
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice(testQuestion())
	m.Eliminated[1] = true

	m, _ = m.Update(press(tea.KeyDown, ""))
	assert.Equal(t, 2, m.Selected, "skips eliminated option")

	m, cmd := m.Update(press(tea.KeyEnter, ""))
	msg := chosen(t, cmd)
	assert.Equal(t, "IV", msg.Answer.Value)
}

func TestMultiChoice_OutOfRangeKey(t *testing.T) {
	m := NewMultiChoice(testQuestion())
	_, cmd := m.Update(press('5', "5"))
	assert.Nil(t, cmd)
}

func TestMultiChoice_View(t *testing.T) {
	m := NewMultiChoice(testQuestion())
	view := m.View()
	for _, want := range []string{"1)  I", "2)  II, III", "3)  IV"} {
		assert.Contains(t, view, want)
	}
}

func TestStatsRows(t *testing.T) {
	ds := elements.Default()
	items := []*settings.ItemSetting{
		{ID: "Fe", Enabled: true, Stats: settings.Stats{Times: 4, Right: 3, Wrong: 1}},
		{ID: "Xx", Enabled: false},
	}

	rows := StatsRows(ds, items)
	require.Len(t, rows, 2)
	assert.Equal(t, "Iron", rows[0].Name)
	assert.Equal(t, elements.GroupTransitionMetal, rows[0].Group)
	assert.Equal(t, "Xx", rows[1].Name)

	total := StatsTotals(rows)
	assert.Equal(t, settings.Stats{Times: 4, Right: 3, Wrong: 1}, total)

	out := StatsTable(rows, 0)
	assert.Contains(t, out, "Iron")
	assert.Contains(t, out, "75%")
	assert.True(t, strings.Contains(out, "ACCURACY"))
}

func TestFormatAccuracy(t *testing.T) {
	assert.Equal(t, "-", FormatAccuracy(settings.Stats{}))
	assert.Equal(t, "50%", FormatAccuracy(settings.Stats{Times: 2, Right: 1, Wrong: 1}))
}

func TestProgressBar(t *testing.T) {
	p := NewProgressBar("Done", 3, 4, 40)
	assert.InDelta(t, 0.75, p.Percent(), 1e-9)
	assert.Contains(t, p.View(), "3/4")

	assert.Zero(t, NewProgressBar("", 1, 0, 10).Percent())
	assert.Equal(t, 1.0, NewProgressBar("", 9, 4, 10).Percent())
}
