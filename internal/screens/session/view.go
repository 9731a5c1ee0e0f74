package session

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/ui/components"
	"github.com/abhisek/valenz/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderMessage(width, theme.Error, "Error: "+s.errMsg)
	case !s.started:
		return renderMessage(width, theme.TextDim, "Preparing test...")
	case s.question == nil && s.ctrl.Total() == 0:
		return renderMessage(width, theme.TextDim,
			"No elements are enabled.\n\nEnable some on the Elements screen first.")
	case s.question == nil:
		return renderMessage(width, theme.TextDim, "Round complete.")
	case s.quitConfirm:
		return renderMessage(width, theme.Accent,
			"Leave this test?\n\nAnswers given so far are already saved.\n\n[Y] Leave   [N] Keep going")
	}
	return s.renderQuestion(width)
}

func renderMessage(width int, fg color.Color, text string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Render("\n\n" + text)
}

// renderQuestion renders the element tile, the options and any feedback.
func (s *SessionScreen) renderQuestion(width int) string {
	q := s.question
	var b strings.Builder

	right, wrong := s.ctrl.Tally()
	done := s.roundSize - len(s.ctrl.Pending())
	info := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Round %d", s.ctrl.Round()))
	score := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%s %d  %s %d",
		lipgloss.NewStyle().Foreground(theme.Success).Render("✓"), right,
		lipgloss.NewStyle().Foreground(theme.Error).Render("✗"), wrong))
	bar := components.NewProgressBar("", done, s.roundSize, min(width/3, 30)).View()

	line := info
	if pad := width - lipgloss.Width(info) - lipgloss.Width(bar) - lipgloss.Width(score) - 6; pad > 0 {
		line += strings.Repeat(" ", pad/2) + bar + strings.Repeat(" ", pad-pad/2) + score
	}
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	group := elements.Group(q.Group)
	tile := theme.Symbol(q.Prompt, group)
	caption := theme.Subtitle.Render(s.elementCaption(q.ID, group))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, theme.Body.Render("What is the valence of"), "", tile, caption)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))
	b.WriteString("\n")

	if fb := s.renderFeedback(width); fb != "" {
		b.WriteString(fb)
		b.WriteString("\n")
	}
	if s.warning != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(s.warning)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *SessionScreen) elementCaption(id string, group elements.Group) string {
	if s.dataset == nil {
		return group.DisplayName()
	}
	el, ok := s.dataset.Get(id)
	if !ok {
		return group.DisplayName()
	}
	return fmt.Sprintf("%s · %s", el.Name, group.DisplayName())
}

func (s *SessionScreen) renderFeedback(width int) string {
	var lines []string

	switch {
	case s.showingDone && len(s.misses) == 0:
		lines = append(lines, theme.Correct.Render("Correct!"))
	case s.showingDone:
		lines = append(lines, theme.Correct.Render(fmt.Sprintf("Correct after %d wrong %s.",
			len(s.misses), plural(len(s.misses), "try", "tries"))))
	case len(s.misses) > 0:
		lines = append(lines, theme.Incorrect.Render(
			fmt.Sprintf("%s is not right. Try again.", s.misses[len(s.misses)-1])))
	}

	switch {
	case s.explaining:
		lines = append(lines, theme.Hint.Render("Asking for an explanation..."))
	case s.explainErr != "":
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render("Explanation failed: "+s.explainErr))
	case s.explanation != nil:
		text := s.explanation.Text
		if s.explanation.Mnemonic != "" {
			text += "\n\n" + theme.Hint.Render("Remember: "+s.explanation.Mnemonic)
		}
		card := theme.Card.Width(min(width-8, 70)).Render(text)
		lines = append(lines, card)
	}

	if len(lines) == 0 {
		return ""
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
