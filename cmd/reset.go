package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [symbols...]",
	Short: "Reset answer statistics for some or all elements",
	RunE: func(cmd *cobra.Command, args []string) error {
		withExplanations, _ := cmd.Flags().GetBool("explanations")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		var ids []string
		if len(args) > 0 {
			if ids, err = resolveIDs(e.dataset, args); err != nil {
				return err
			}
		}
		if err := e.settings.ResetStats(ids...); err != nil {
			return err
		}
		if err := e.settings.Persist(cmd.Context()); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(ids) == 0 {
			fmt.Fprintln(out, "Reset statistics for all elements.")
		} else {
			fmt.Fprintf(out, "Reset statistics for %d element(s).\n", len(ids))
		}

		if withExplanations {
			n, err := e.store.ExplanationRepo().Delete(cmd.Context(), ids...)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Deleted %d cached explanation(s).\n", n)
		}
		e.log.Info("statistics reset", "elements", len(ids), "explanations", withExplanations)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("explanations", false, "Also delete cached LLM explanations")
}
