package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/valenz/internal/ui/components"
	"github.com/abhisek/valenz/internal/ui/theme"
)

// Block-letter title.
const titleFull = `██╗   ██╗ █████╗ ██╗     ███████╗███╗   ██╗███████╗
██║   ██║██╔══██╗██║     ██╔════╝████╗  ██║╚══███╔╝
██║   ██║███████║██║     █████╗  ██╔██╗ ██║  ███╔╝
╚██╗ ██╔╝██╔══██║██║     ██╔══╝  ██║╚██╗██║ ███╔╝
 ╚████╔╝ ██║  ██║███████╗███████╗██║ ╚████║███████╗
  ╚═══╝  ╚═╝  ╚═╝╚══════╝╚══════╝╚═╝  ╚═══╝╚══════╝`

const titleCompact = "V · A · L · E · N · Z"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	return min(max(frameWidth-6, 20), 60)
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Highlight).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders enabled count, answers and accuracy in a bordered box.
func renderStatsBar(enabled, total, answers int, accuracy string, cw int, compact bool) string {
	enabledStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	answersStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	accuracyStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			enabledStyle.Render(fmt.Sprintf("⚛%d/%d", enabled, total)),
			answersStyle.Render(fmt.Sprintf("Σ%d", answers)),
			accuracyStyle.Render("✓"+accuracy),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			enabledStyle.Render(fmt.Sprintf("⚛ %d/%d ENABLED", enabled, total)),
			answersStyle.Render(fmt.Sprintf("Σ %d ANSWERS", answers)),
			accuracyStyle.Render("✓ "+accuracy),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(menu components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(menu.View(buttonWidth))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(menu components.Menu, cw int) string {
	var lines []string
	for i, item := range menu.Items {
		var line string
		switch {
		case item.Disabled:
			line = lipgloss.NewStyle().Foreground(theme.TextDim).Render("   " + item.Label)
		case i == menu.Selected:
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Highlight).
				Bold(true).
				Render(" ▸ " + item.Label + " ")
		default:
			line = lipgloss.NewStyle().Foreground(theme.Text).Render("   " + item.Label)
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner renders a hint when explanations are unavailable.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("Set an LLM API key to get explanations (see valenz --help)")
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderCabinetFrame wraps content in a double-border frame, centered
// vertically and horizontally within the given dimensions.
func renderCabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
