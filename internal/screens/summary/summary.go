package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/quiz"
	"github.com/abhisek/valenz/internal/router"
	"github.com/abhisek/valenz/internal/screen"
	"github.com/abhisek/valenz/internal/ui/layout"
	"github.com/abhisek/valenz/internal/ui/theme"
)

// RepeatMsg asks the test screen below to run another round.
type RepeatMsg struct {
	WrongOnly bool
}

// Result is the state of a finished round.
type Result struct {
	Round int
	Total int
	Right []*quiz.Question
	Wrong []*quiz.Question
	Tally quiz.RetryTally

	// Warned is set when some answers could not be saved.
	Warned bool
}

// Accuracy returns right / (right + wrong), or 0 with no answers.
func (r Result) Accuracy() float64 {
	n := len(r.Right) + len(r.Wrong)
	if n == 0 {
		return 0
	}
	return float64(len(r.Right)) / float64(n)
}

// SummaryScreen displays the results of a round.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "R", Description: "Repeat all"}}
	if len(s.result.Wrong) > 0 {
		hints = append(hints, layout.KeyHint{Key: "W", Description: "Repeat wrong"})
	}
	return append(hints, layout.KeyHint{Key: "Enter", Description: "Home"})
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "r", "R":
			return s, repeat(false)
		case "w", "W":
			if len(s.result.Wrong) == 0 {
				return s, nil
			}
			return s, repeat(true)
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		}
	}
	return s, nil
}

// repeat pops back to the test screen and hands it the repeat request.
func repeat(wrongOnly bool) tea.Cmd {
	return func() tea.Msg {
		return router.PopScreenMsg{Result: RepeatMsg{WrongOnly: wrongOnly}}
	}
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	center := func(str string) string { return lipgloss.PlaceHorizontal(width, lipgloss.Center, str) }

	var b strings.Builder

	title := "Test complete!"
	if res.Round > 1 {
		title = fmt.Sprintf("Round %d complete!", res.Round)
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(title)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Right: %s        Wrong: %s        Accuracy: %.0f%%",
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(fmt.Sprint(len(res.Right))),
		lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(fmt.Sprint(len(res.Wrong))),
		res.Accuracy()*100)
	b.WriteString(center(theme.Body.Render(statsLine)))
	b.WriteString("\n")
	if res.Round > 1 && res.Tally == quiz.ResetRight {
		b.WriteString(center(theme.Hint.Render("Counting only the repeated questions.")))
		b.WriteString("\n")
	}
	if res.Warned {
		b.WriteString(center(theme.Hint.Render("Some answers could not be saved to statistics.")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(res.Wrong) == 0 {
		b.WriteString(center(theme.Correct.Render("No mistakes. Well done!")))
		b.WriteString("\n")
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 50)))
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("To review")))
	b.WriteString("\n")
	b.WriteString(center(divider))
	b.WriteString("\n\n")

	for _, q := range res.Wrong {
		symbol := lipgloss.NewStyle().
			Foreground(theme.GroupColor(elements.Group(q.Group))).
			Bold(true).
			Render(fmt.Sprintf("%-3s", q.Prompt))
		line := fmt.Sprintf("%s  valence %s", symbol, q.CorrectAnswer().Value)
		b.WriteString(center(theme.Body.Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}
