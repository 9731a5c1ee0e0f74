package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/valenz/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-element answer statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		enabledOnly, _ := cmd.Flags().GetBool("enabled")
		askedOnly, _ := cmd.Flags().GetBool("asked")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		var rows []components.StatsRow
		for _, r := range components.StatsRows(e.dataset, e.settings.Items()) {
			if enabledOnly && !r.Enabled {
				continue
			}
			if askedOnly && r.Stats.Times == 0 {
				continue
			}
			rows = append(rows, r)
		}

		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, "No elements match.")
			return nil
		}

		lipgloss.Fprintln(out, components.StatsTable(rows, 0))

		total := components.StatsTotals(rows)
		fmt.Fprintf(out, "%d of %d elements enabled. %d answers, %d right, %d wrong, accuracy %s.\n",
			e.settings.EnabledCount(), len(e.settings.Items()),
			total.Times, total.Right, total.Wrong, components.FormatAccuracy(total))
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("enabled", false, "Only show enabled elements")
	statsCmd.Flags().Bool("asked", false, "Only show elements that were asked at least once")
}
