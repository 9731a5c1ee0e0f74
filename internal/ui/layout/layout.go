// Package layout draws the frame around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/valenz/internal/ui/theme"
)

// The quiz needs room for the element tile plus six options.
const (
	MinWidth  = 60
	MinHeight = 20

	// Below these the home screen drops the block title and the cabinet.
	CompactWidth  = 100
	CompactHeight = 30
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompact reports whether there is no room for decorations.
func IsCompact(width, height int) bool {
	return width < CompactWidth || height < CompactHeight
}

// IsTooSmall reports whether the terminal cannot fit a question.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to grow the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The periodic table needs more room.\n\nResize to at least %d x %d (now %d x %d).",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader draws the title bar: app name left, screen title centered,
// status right.
func RenderHeader(title, status string, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ⚛ Valenz")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	end := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	nw, mw, ew := lipgloss.Width(name), lipgloss.Width(mid), lipgloss.Width(end)
	gapL := max((inner-mw)/2-nw, 1)
	gapR := max(inner-nw-gapL-mw-ew, 1)

	return bar(width).Render(name + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + end)
}

// RenderFooter draws the key hints. Hints that would overflow the bar are
// dropped from the end, except the last one (the quit hint) which always
// stays.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	for len(parts) > 1 && lipgloss.Width("  "+strings.Join(parts, "   ")) > width-4 {
		parts = append(parts[:len(parts)-2], parts[len(parts)-1])
	}
	return bar(width).Render("  " + strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, padding the content to fill
// the height left between them.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content = lipgloss.NewStyle().Width(width).Height(body).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}
