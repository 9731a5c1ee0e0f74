package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/valenz/internal/explain"
)

// explainTimeout bounds the whole request; the provider applies its own
// per-call timeout inside it.
const explainTimeout = time.Minute

var explainCmd = &cobra.Command{
	Use:   "explain <symbol>",
	Short: "Explain an element's valence using the configured LLM",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chosen, _ := cmd.Flags().GetString("chosen")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ids, err := resolveIDs(e.dataset, args)
		if err != nil {
			return err
		}
		if len(ids) != 1 {
			return fmt.Errorf("explain takes a single element, got %d", len(ids))
		}
		el, _ := e.dataset.Get(ids[0])

		svc, warning := e.explainer(cmd.Context())
		if warning != "" {
			return fmt.Errorf("LLM provider: %s", warning)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), explainTimeout)
		defer cancel()

		res, err := svc.Explain(ctx, explain.Request{Element: el, Chosen: chosen})
		if errors.Is(err, explain.ErrUnavailable) {
			return err
		}
		if err != nil {
			return fmt.Errorf("explain %s: %w", el.Symbol, err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s), %s\n\n", el.Name, el.Symbol, el.Group.DisplayName())
		fmt.Fprintln(out, res.Verdict)
		fmt.Fprintln(out)
		fmt.Fprintln(out, res.Text)
		if res.Mnemonic != "" {
			fmt.Fprintf(out, "\nRemember: %s\n", res.Mnemonic)
		}
		source := "generated by " + res.Model
		if res.Cached {
			source = "cached, " + res.Model
		}
		fmt.Fprintf(out, "\n(%s)\n", source)
		return nil
	},
}

func init() {
	explainCmd.Flags().String("chosen", "", "The valence you picked, to explain why it is wrong")
}
