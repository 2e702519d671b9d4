package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tinoosan/smartbudget/internal/categorize"
	"github.com/tinoosan/smartbudget/internal/classifier/gemini"
	"github.com/tinoosan/smartbudget/internal/config"
	"github.com/tinoosan/smartbudget/internal/service/budget"
	"github.com/tinoosan/smartbudget/internal/service/user"
	"github.com/tinoosan/smartbudget/internal/storage/memory"
	pgstore "github.com/tinoosan/smartbudget/internal/storage/postgres"
	"github.com/tinoosan/smartbudget/internal/storage/sqlite"
)

// store is what every backend provides.
type store interface {
	user.Repo
	user.Writer
	budget.Repo
	budget.Writer
	Ready(ctx context.Context) error
}

// openStore opens the configured backend. The returned func releases it.
func openStore(ctx context.Context, c config.StorageConfig, logger *slog.Logger) (store, func(), error) {
	switch c.Backend {
	case "memory":
		logger.Info("storage backend: memory")
		return memory.New(), func() {}, nil
	case "postgres":
		pg, err := pgstore.Open(ctx, c.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		logger.Info("storage backend: postgres")
		return pg, pg.Close, nil
	default:
		st, err := sqlite.Open(ctx, c.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		logger.Info("storage backend: sqlite", "path", c.SQLitePath)
		return st, func() {
			if err := st.Close(); err != nil {
				logger.Warn("close sqlite", "err", err)
			}
		}, nil
	}
}

// buildCategorizer applies the configured keyword table, default category and
// optional Gemini classifier. The returned func releases the classifier.
func buildCategorizer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*categorize.Categorizer, func(), error) {
	rules := categorize.DefaultRules()
	if len(cfg.Categories) > 0 {
		rules = make([]categorize.Rule, 0, len(cfg.Categories))
		for _, r := range cfg.Categories {
			rules = append(rules, categorize.Rule{Category: strings.TrimSpace(r.Name), Keywords: r.Keywords})
		}
	}
	opts := []categorize.Option{
		categorize.WithRules(rules),
		categorize.WithDefault(cfg.DefaultCategory),
		categorize.WithTimeout(cfg.Classifier.Timeout),
		categorize.WithLogger(logger),
	}
	closeFn := func() {}
	if cfg.Classifier.Provider == "gemini" {
		names := make([]string, 0, len(rules))
		for _, r := range rules {
			names = append(names, r.Category)
		}
		cl, err := gemini.New(ctx, cfg.Classifier.APIKey, cfg.Classifier.Model, names, cfg.DefaultCategory)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, categorize.WithClassifier(cl))
		closeFn = func() {
			if err := cl.Close(); err != nil {
				logger.Warn("close classifier", "err", err)
			}
		}
		logger.Info("classifier enabled", "provider", "gemini")
	}
	return categorize.New(opts...), closeFn, nil
}
