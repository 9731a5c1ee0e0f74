package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var elementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "List, enable and disable the elements asked in tests",
}

var elementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List elements with their valence and whether they are enabled",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-4s  %-3s  %-14s  %-22s  %-10s  %s\n",
			"No", "Sym", "Name", "Group", "Valence", "On")
		fmt.Fprintln(out, strings.Repeat("─", 66))
		for _, el := range e.dataset.All() {
			on := "no"
			if s, ok := e.settings.Get(el.Symbol); ok && s.Enabled {
				on = "yes"
			}
			fmt.Fprintf(out, "%-4d  %-3s  %-14s  %-22s  %-10s  %s\n",
				el.Atomic, el.Symbol, truncate(el.Name, 14), truncate(el.Group.DisplayName(), 22), el.Valency, on)
		}
		fmt.Fprintf(out, "\n%d of %d enabled.\n", e.settings.EnabledCount(), e.dataset.Len())
		return nil
	},
}

var elementsEnableCmd = &cobra.Command{
	Use:   "enable <symbols...|all>",
	Short: "Enable elements",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, args, true)
	},
}

var elementsDisableCmd = &cobra.Command{
	Use:   "disable <symbols...|all>",
	Short: "Disable elements",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabled(cmd, args, false)
	},
}

func setEnabled(cmd *cobra.Command, args []string, enabled bool) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ids, err := resolveIDs(e.dataset, args)
	if err != nil {
		return err
	}
	if err := e.settings.SetEnabled(enabled, ids...); err != nil {
		return err
	}
	if err := e.settings.Persist(cmd.Context()); err != nil {
		return err
	}

	verb := "Disabled"
	if enabled {
		verb = "Enabled"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d element(s). %d of %d enabled.\n",
		verb, len(ids), e.settings.EnabledCount(), e.dataset.Len())
	return nil
}

func init() {
	elementsCmd.AddCommand(elementsListCmd)
	elementsCmd.AddCommand(elementsEnableCmd)
	elementsCmd.AddCommand(elementsDisableCmd)
}
