package components

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/settings"
	"github.com/abhisek/valenz/internal/ui/theme"
)

// StatsRow is one element line of the statistics table.
type StatsRow struct {
	Symbol  string
	Name    string
	Group   elements.Group
	Enabled bool
	Stats   settings.Stats
}

// StatsRows joins settings with the dataset, in settings order. Settings for
// ids the dataset does not know are listed with the id as name.
func StatsRows(ds *elements.Dataset, items []*settings.ItemSetting) []StatsRow {
	rows := make([]StatsRow, 0, len(items))
	for _, it := range items {
		r := StatsRow{Symbol: it.ID, Name: it.ID, Enabled: it.Enabled, Stats: it.Stats}
		if ds != nil {
			if e, ok := ds.Get(it.ID); ok {
				r.Name = e.Name
				r.Group = e.Group
			}
		}
		rows = append(rows, r)
	}
	return rows
}

// StatsTotals sums the counters of all rows.
func StatsTotals(rows []StatsRow) settings.Stats {
	var total settings.Stats
	for _, r := range rows {
		total.Times += r.Stats.Times
		total.Right += r.Stats.Right
		total.Wrong += r.Stats.Wrong
	}
	return total
}

// StatsTable renders rows as a bordered table. A width of 0 lets the table
// size itself.
func StatsTable(rows []StatsRow, width int) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		enabled := "no"
		if r.Enabled {
			enabled = "yes"
		}
		data = append(data, []string{
			r.Symbol,
			r.Name,
			enabled,
			fmt.Sprint(r.Stats.Times),
			fmt.Sprint(r.Stats.Right),
			fmt.Sprint(r.Stats.Wrong),
			FormatAccuracy(r.Stats),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("SYMBOL", "NAME", "ON", "TIMES", "RIGHT", "WRONG", "ACCURACY").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Foreground(theme.Primary).Bold(true)
			}
			if row < 0 || row >= len(rows) {
				return style
			}
			r := rows[row]
			switch {
			case col == 0:
				return style.Foreground(theme.GroupColor(r.Group)).Bold(true)
			case !r.Enabled:
				return style.Foreground(theme.TextDim)
			case col == 4 && r.Stats.Right > 0:
				return style.Foreground(theme.Success)
			case col == 5 && r.Stats.Wrong > 0:
				return style.Foreground(theme.Error)
			}
			return style.Foreground(theme.Text)
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.Render()
}

// FormatAccuracy renders Right/Times as a percentage, or a dash when the
// item was never asked.
func FormatAccuracy(s settings.Stats) string {
	if s.Times == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", s.Accuracy()*100)
}
