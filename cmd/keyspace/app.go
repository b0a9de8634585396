package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"keyspace/internal/config"
	"keyspace/internal/dictionary"
	"keyspace/internal/registry"
)

// app carries state shared by every subcommand. It is populated by the root
// command's PersistentPreRunE.
type app struct {
	configPath string
	orgID      string

	cfg    config.Config
	logger *slog.Logger
	store  registry.Store
	close  func() error
}

func newLogger(w io.Writer, c config.LogConfig) (*slog.Logger, error) {
	level, err := config.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}

	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.orgID != "" {
		cfg.OrgID = a.orgID
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

// openStore opens the configured import store once.
func (a *app) openStore() (registry.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	switch a.cfg.Store.Driver {
	case config.DriverSQLite:
		s, err := registry.OpenSQLite(a.cfg.Store.DSN)
		if err != nil {
			return nil, err
		}

		a.store = s
		a.close = s.Close
	default:
		a.store = registry.NewMemoryStore()
	}

	return a.store, nil
}

func (a *app) teardown() error {
	if a.close == nil {
		return nil
	}

	err := a.close()
	a.close = nil

	return err
}

// registry loads the configured built-in dictionaries over the import store.
func (a *app) registry() (*registry.Registry, error) {
	builtins := make([]*dictionary.Dictionary, 0, len(a.cfg.Dictionaries))

	for _, path := range a.cfg.Dictionaries {
		d, err := dictionary.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load built-in %s: %w", path, err)
		}

		builtins = append(builtins, d)
	}

	store, err := a.openStore()
	if err != nil {
		return nil, err
	}

	return registry.New(store, builtins, registry.WithLogger(a.logger))
}

// scope returns the merged dictionary view for the configured organization.
func (a *app) scope(ctx context.Context) (*registry.Scope, error) {
	reg, err := a.registry()
	if err != nil {
		return nil, err
	}

	return reg.Scope(ctx, a.cfg.OrgID)
}

// errFailed signals a non-zero exit after the command already reported why.
var errFailed = errors.New("validation failed")
