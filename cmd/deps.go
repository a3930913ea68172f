package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/lessonarcade/internal/config"
	"github.com/abhisek/lessonarcade/internal/lessongen"
	"github.com/abhisek/lessonarcade/internal/llm"
	"github.com/abhisek/lessonarcade/internal/logger"
	"github.com/abhisek/lessonarcade/internal/session"
	"github.com/abhisek/lessonarcade/internal/store"
)

// deps is everything a host needs, built once per command.
type deps struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store

	// generator is nil when no LLM provider is configured.
	generator *lessongen.Generator
}

// openDeps loads config, opens the store and builds the generator. The TUI
// passes logToFile so log lines do not tear the screen.
func openDeps(cmd *cobra.Command, logToFile bool) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	logFile := cfg.Log.File
	if logToFile && logFile == "" {
		logFile = filepath.Join(filepath.Dir(dbPath), "lessonarcade.log")
	}
	log, err := logger.New(cfg.Log.Mode, logFile)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	d := &deps{cfg: cfg, log: log, store: st}
	provider, err := newProvider(cmd.Context(), cfg, st.EventRepo(), log)
	if err != nil {
		log.Warn("LLM provider not configured", "error", err)
		return d, nil
	}
	d.generator = lessongen.NewGenerator(provider, lessongen.Config{
		MaxTokens:   cfg.Generation.MaxTokens,
		Temperature: cfg.Generation.Temperature,
	}, log)
	return d, nil
}

// newProvider layers the config file and the environment over the
// built-in LLM defaults.
func newProvider(ctx context.Context, cfg config.Config, repo store.EventRepo, log *logger.Logger) (llm.Provider, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	llmCfg := llm.ResolveConfig(cfg.LLM.Provider(llm.DefaultConfig()))
	return llm.NewProvider(ctx, llmCfg, repo, log)
}

func (d *deps) newSession() *session.Session {
	return session.New(session.Options{
		Reward:          d.cfg.Game.Reward(),
		CompletionDelay: d.cfg.Game.Delay(),
		Logger:          d.log,
	})
}

func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		d.log.Warn("close store", "error", err)
	}
	d.log.Sync()
}
