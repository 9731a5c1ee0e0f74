package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/valenz/internal/quiz"
	"github.com/abhisek/valenz/internal/ui/theme"
)

// MultiChoice lets the user pick one answer of a question. Wrong picks are
// struck out and stay disabled, the way a retried question is answered
// until it is right.
type MultiChoice struct {
	Answers    []quiz.Answer
	Selected   int
	Eliminated map[int]bool

	// Solved is set once the correct answer has been picked.
	Solved bool
}

// NewMultiChoice creates a selector for the answers of q.
func NewMultiChoice(q *quiz.Question) MultiChoice {
	return MultiChoice{
		Answers:    q.Answers,
		Eliminated: make(map[int]bool),
	}
}

// ChosenMsg is emitted when an answer is picked.
type ChosenMsg struct {
	Index  int
	Answer quiz.Answer
}

// Update handles navigation and selection. Picking an answer emits a
// ChosenMsg.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || m.Solved {
		return m, nil
	}

	for i, b := range ChoiceKeys {
		if i < len(m.Answers) && key.Matches(kmsg, b) {
			m.Selected = i
			return m.choose()
		}
	}

	switch {
	case key.Matches(kmsg, KeyUp):
		m.Selected = m.step(-1)
	case key.Matches(kmsg, KeyDown):
		m.Selected = m.step(1)
	case key.Matches(kmsg, KeySelect):
		return m.choose()
	}
	return m, nil
}

func (m MultiChoice) step(dir int) int {
	for i := m.Selected + dir; i >= 0 && i < len(m.Answers); i += dir {
		if !m.Eliminated[i] {
			return i
		}
	}
	return m.Selected
}

func (m MultiChoice) choose() (MultiChoice, tea.Cmd) {
	i := m.Selected
	if i < 0 || i >= len(m.Answers) || m.Eliminated[i] {
		return m, nil
	}
	a := m.Answers[i]
	if a.Correct {
		m.Solved = true
	} else {
		m.Eliminated[i] = true
		m.Selected = m.step(1)
		if m.Selected == i {
			m.Selected = m.step(-1)
		}
	}
	return m, func() tea.Msg { return ChosenMsg{Index: i, Answer: a} }
}

// View renders the options, one per line.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, a := range m.Answers {
		prefix := "  "
		if i == m.Selected && !m.Solved {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, a.Value)

		switch {
		case m.Solved && a.Correct:
			line = theme.Correct.Render(line + "  ✓")
		case m.Eliminated[i]:
			line = theme.Incorrect.Strikethrough(true).Render(line)
		case m.Solved:
			line = theme.Disabled.Render(line)
		case i == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
