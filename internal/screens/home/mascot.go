package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/valenz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default purple
	MascotCelebrating                      // Gold, high lifetime accuracy
	MascotAlert                            // Orange, nothing enabled
)

const mascotIdle = `   .-.
 -( ● )-
   '-'
 e⁻ · e⁻`

const mascotCelebrating = ` ★ .-. ★
 -( ● )-
   '-'
 e⁻ · e⁻`

const mascotAlert = `   .-.   !
 -( ● )-
   '-'
  ·   ·`

// RenderMascot returns the atom art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch variant {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Highlight
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}

// mascotFor picks the variant for the current settings.
func mascotFor(enabled, answers int, accuracy float64) MascotVariant {
	switch {
	case enabled == 0:
		return MascotAlert
	case answers >= 20 && accuracy >= 0.9:
		return MascotCelebrating
	}
	return MascotIdle
}
