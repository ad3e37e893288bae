package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/doctrail/contact-cli/internal/accounts"
	"github.com/doctrail/contact-cli/internal/extract"
	"github.com/doctrail/contact-cli/internal/resolve"
	"github.com/doctrail/contact-cli/pkg/anthropic"
)

// appEnv holds the initialized store and pipeline needed by the
// resolve/serve commands.
type appEnv struct {
	Store    accounts.Store
	Pipeline *resolve.Pipeline
}

// Close releases resources held by the environment.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initStore opens the accounts store for the configured driver.
func initStore(ctx context.Context) (accounts.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return accounts.NewPostgres(ctx, cfg.Store.DatabaseURL, &accounts.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	case "sqlite":
		return accounts.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// initEnv sets up the store, the extractor, and the pipeline. Callers should
// defer env.Close(). A missing contact model is not an error: the pipeline
// is assembled disabled and every run reports the no-op outcome.
func initEnv(ctx context.Context) (*appEnv, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	enabled := cfg.Anthropic.ContactModelConfigured()
	var extractor extract.Extractor
	if enabled {
		extractor = extract.NewClaudeExtractor(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic)
	} else {
		zap.L().Info("contact model not configured, resolution will be a no-op")
	}

	return &appEnv{
		Store:    st,
		Pipeline: resolve.New(st, extractor, enabled),
	}, nil
}
