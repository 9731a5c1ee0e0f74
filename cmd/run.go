package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/valenz/internal/app"
	"github.com/abhisek/valenz/internal/selfupdate"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Start a test right away",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, startTest bool) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	explainer, warning := e.explainer(cmd.Context())
	if warning != "" {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", warning)
		fmt.Fprintln(os.Stderr, "Explanations will be unavailable.")
	}

	opts := app.Options{
		Dataset:     e.dataset,
		Settings:    e.settings,
		Explainer:   explainer,
		QuizOptions: e.cfg.QuizOptions(),
		Logger:      e.zap(),
		Version:     version,
		StartTest:   startTest,
		Splash:      e.firstRun && !startTest,
		Updates:     selfupdate.NewChecker(),
	}
	e.log.Info("starting tui", "start_test", startTest, "first_run", e.firstRun, "llm", explainer.Available())
	return app.Run(opts)
}
