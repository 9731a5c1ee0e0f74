package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/valenz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "valenz",
	Short: "Learn the valences of the chemical elements",
	Long: `Valenz is a terminal quiz that drills the valences of chemical elements.

Each question shows an element and a handful of candidate valences. Pick the
right one; wrong picks are struck out until you find it. Per-element
statistics are kept in a local SQLite database.

Explanations of missed answers need an LLM provider. Set one of
GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY or OPENROUTER_API_KEY, or
VALENZ_LLM_PROVIDER with the matching VALENZ_<PROVIDER>_API_KEY.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VALENZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides VALENZ_CONFIG env var)")

	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(elementsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then VALENZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
