package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/settings"
	"github.com/abhisek/valenz/internal/store"
)

// isolate points every path and provider variable at nothing so the user's
// own config never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	for _, v := range []string{
		"VALENZ_DB", "VALENZ_CONFIG", "VALENZ_LOG_LEVEL", "VALENZ_RETRY_TALLY",
		"VALENZ_LLM_PROVIDER", "GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(v, "")
	}
	return filepath.Join(dir, "valenz.db")
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func loadSettings(t *testing.T, db string) *settings.Store {
	t.Helper()
	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	s, err := settings.Load(context.Background(), st.SettingsRepo(), elements.Default().IDs())
	require.NoError(t, err)
	return s
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "valenz "+version+"\n", out)
}

func TestElementsEnableDisable(t *testing.T) {
	db := isolate(t)
	total := elements.Default().Len()

	out, err := run(t, "--db", db, "elements", "disable", "all")
	require.NoError(t, err)
	assert.Contains(t, out, "0 of")

	out, err = run(t, "--db", db, "elements", "enable", "h", "FE,o")
	require.NoError(t, err)
	assert.Contains(t, out, "Enabled 3 element(s). 3 of")

	s := loadSettings(t, db)
	assert.Equal(t, 3, s.EnabledCount())
	fe, _ := s.Get("Fe")
	assert.True(t, fe.Enabled)

	out, err = run(t, "--db", db, "elements", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Hydrogen")
	assert.Contains(t, out, fmt.Sprintf("3 of %d enabled.", total))

	_, err = run(t, "--db", db, "elements", "enable", "Xx")
	assert.ErrorContains(t, err, "unknown element(s): Xx")
}

func TestStatsAndReset(t *testing.T) {
	db := isolate(t)

	st, err := store.Open(db)
	require.NoError(t, err)
	s, err := settings.Load(context.Background(), st.SettingsRepo(), elements.Default().IDs())
	require.NoError(t, err)
	h, _ := s.Get("H")
	h.Stats = settings.Stats{Times: 4, Right: 3, Wrong: 1}
	o, _ := s.Get("O")
	o.Stats = settings.Stats{Times: 2, Right: 2}
	require.NoError(t, s.Persist(context.Background()))
	require.NoError(t, st.ExplanationRepo().Put(context.Background(), &store.Explanation{ElementID: "H", Model: "mock", Explanation: "x"}))
	require.NoError(t, st.Close())

	out, err := run(t, "--db", db, "stats", "--asked")
	require.NoError(t, err)
	assert.Contains(t, out, "Hydrogen")
	assert.Contains(t, out, "Oxygen")
	assert.NotContains(t, out, "Lithium")
	assert.Contains(t, out, "6 answers, 5 right, 1 wrong, accuracy 83%.")

	out, err = run(t, "--db", db, "reset", "h", "--explanations")
	require.NoError(t, err)
	assert.Contains(t, out, "Reset statistics for 1 element(s).")
	assert.Contains(t, out, "Deleted 1 cached explanation(s).")

	reloaded := loadSettings(t, db)
	h, _ = reloaded.Get("H")
	o, _ = reloaded.Get("O")
	assert.Zero(t, h.Stats)
	assert.Equal(t, 2, o.Stats.Times)

	_, err = run(t, "--db", db, "reset")
	require.NoError(t, err)
	out, err = run(t, "--db", db, "stats", "--asked")
	require.NoError(t, err)
	assert.Equal(t, "No elements match.\n", out)
}

func TestExplain(t *testing.T) {
	db := isolate(t)

	_, err := run(t, "--db", db, "explain", "Fe")
	assert.ErrorContains(t, err, "LLM provider")

	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, st.ExplanationRepo().Put(context.Background(), &store.Explanation{
		ElementID: "Fe", Model: "mock", Explanation: "Iron loses two or three electrons.", Mnemonic: "Fe two-three",
	}))
	require.NoError(t, st.Close())

	t.Setenv("VALENZ_LLM_PROVIDER", "mock")
	out, err := run(t, "--db", db, "explain", "fe", "--chosen", "II")
	require.NoError(t, err)
	assert.Contains(t, out, "Iron (Fe)")
	assert.Contains(t, out, "Iron loses two or three electrons.")
	assert.Contains(t, out, "Remember: Fe two-three")
	assert.Contains(t, out, "(cached, mock)")
}

func TestLLMCommandsEmpty(t *testing.T) {
	db := isolate(t)

	out, err := run(t, "--db", db, "llm", "list")
	require.NoError(t, err)
	assert.Equal(t, "No LLM requests recorded.\n", out)

	out, err = run(t, "--db", db, "llm", "stats")
	require.NoError(t, err)
	assert.Equal(t, "No LLM usage recorded yet.\n", out)
}

func TestLLMStats(t *testing.T) {
	db := isolate(t)
	st, err := store.Open(db)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.EventRepo().AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "explain", InputTokens: 1000, OutputTokens: 500, LatencyMs: 20, Success: true,
	}))
	require.NoError(t, st.EventRepo().AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "custom", Model: "homegrown", Purpose: "explain", LatencyMs: 10, ErrorMessage: "boom",
	}))
	require.NoError(t, st.Close())

	out, err := run(t, "--db", db, "llm", "list", "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "homegrown")
	assert.Contains(t, out, "✗ boom")
	assert.NotContains(t, out, "gpt-4o-mini")

	out, err = run(t, "--db", db, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "Pricing unavailable for: homegrown")
}

func TestResolveIDs(t *testing.T) {
	ds := elements.Default()

	ids, err := resolveIDs(ds, []string{"all"})
	require.NoError(t, err)
	assert.Len(t, ids, ds.Len())

	ids, err = resolveIDs(ds, []string{"na", "CL, k"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Na", "Cl", "K"}, ids)

	_, err = resolveIDs(ds, []string{"H", "Qq", "Zz"})
	assert.EqualError(t, err, "unknown element(s): Qq, Zz")
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
	assert.Equal(t, "Alumi", truncate("Aluminium", 5))
	assert.Equal(t, "He", truncate("He", 5))
}
