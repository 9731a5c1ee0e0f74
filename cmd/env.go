package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/valenz/internal/config"
	"github.com/abhisek/valenz/internal/elements"
	"github.com/abhisek/valenz/internal/explain"
	"github.com/abhisek/valenz/internal/llm"
	"github.com/abhisek/valenz/internal/logger"
	"github.com/abhisek/valenz/internal/settings"
	"github.com/abhisek/valenz/internal/store"
)

// env holds what every command needs: config, logger, store, dataset and the
// loaded settings.
type env struct {
	cfg      config.Config
	log      *logger.Logger
	store    *store.Store
	dataset  *elements.Dataset
	settings *settings.Store

	// firstRun is true when the database had no settings yet.
	firstRun bool
}

// openEnv resolves paths, loads config, opens the store and reconciles the
// stored settings with the built-in dataset.
func openEnv(cmd *cobra.Command) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	flagConfig, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFlag(flagConfig)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, filepath.Join(filepath.Dir(dbPath), "valenz.log"))
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open database: %w", err)
	}

	e := &env{cfg: cfg, log: log, store: st, dataset: elements.Default()}

	stored, err := st.SettingsRepo().Load(ctx)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("load settings: %w", err)
	}
	e.firstRun = len(stored) == 0

	e.settings, err = settings.Load(ctx, st.SettingsRepo(), e.dataset.IDs())
	if err != nil {
		e.Close()
		return nil, err
	}
	if e.firstRun {
		if err := e.settings.Persist(ctx); err != nil {
			log.Warn("persist initial settings", "error", err)
		}
	}

	log.Debug("environment ready", "db", dbPath, "elements", e.dataset.Len())
	return e, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close database", "error", err)
	}
	e.log.Sync()
}

// llmConfig layers the config file under the VALENZ_* variables and falls
// back to the vendor API key variables. ok is false when no provider is set.
func (e *env) llmConfig() (llm.Config, bool) {
	cfg := llm.DefaultConfig()
	cfg.Provider = e.cfg.LLM.Provider
	cfg.SetModel(e.cfg.LLM.Model)
	cfg.Timeout = e.cfg.LLMTimeout(cfg.Timeout)
	cfg = llm.ApplyEnv(cfg)
	return llm.Discover(cfg)
}

// provider builds the configured LLM provider, or returns nil when none is
// configured. Every request is recorded in the store's event log.
func (e *env) provider(ctx context.Context) (llm.Provider, error) {
	cfg, ok := e.llmConfig()
	if !ok {
		return nil, nil
	}
	return llm.NewProvider(ctx, cfg, e.log.Zap().Named("llm"), e.store.EventRepo())
}

// explainer builds the explanation service. A misconfigured provider is
// reported as a warning and leaves the service without a provider, so the
// quiz still runs.
func (e *env) explainer(ctx context.Context) (*explain.Service, string) {
	provider, err := e.provider(ctx)
	var warning string
	if err != nil {
		e.log.Warn("llm provider unavailable", "error", err)
		warning = err.Error()
		provider = nil
	}
	return explain.NewService(provider, e.store.ExplanationRepo(), explain.DefaultConfig(), e.log.Zap().Named("explain")), warning
}

// zap returns the structured logger.
func (e *env) zap() *zap.Logger {
	return e.log.Zap()
}

// resolveIDs maps user-typed symbols to dataset symbols case-insensitively.
// "all" alone resolves to every element.
func resolveIDs(ds *elements.Dataset, args []string) ([]string, error) {
	if len(args) == 1 && strings.EqualFold(args[0], "all") {
		return ds.IDs(), nil
	}
	bySymbol := make(map[string]string, ds.Len())
	for _, id := range ds.IDs() {
		bySymbol[strings.ToLower(id)] = id
	}
	ids := make([]string, 0, len(args))
	var unknown []string
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, ok := bySymbol[strings.ToLower(part)]
			if !ok {
				unknown = append(unknown, part)
				continue
			}
			ids = append(ids, id)
		}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown element(s): %s", strings.Join(unknown, ", "))
	}
	return ids, nil
}
