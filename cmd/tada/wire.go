package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/auth"
	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
	"github.com/Makepad-fr/tada/internal/todos"
	"github.com/Makepad-fr/tada/internal/ui"
)

// build loads config and resolves the command dependencies. Everything it
// opened is returned for closing, even on error.
func build(cmd *cobra.Command, configPath string) (*cli.Deps, []io.Closer, error) {
	var closers []io.Closer

	cfg, err := config.Load(config.WithFile(configPath))
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	// The TUI owns the terminal, so it logs to a file unless told otherwise.
	logOut := cmd.ErrOrStderr()
	logFile := cfg.Log.File
	if logFile == "" && !cmd.HasParent() {
		logFile = cfg.DefaultLogFile()
	}
	if logFile != "" {
		f, err := openLogFile(logFile)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, f)
		logOut = f
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, logOut)
	slog.SetDefault(logger)

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	registerDependencies(injector, cmd)

	storage, err := do.Invoke[store.Storage](injector)
	if err != nil {
		return nil, closers, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}
	if c, ok := storage.(io.Closer); ok {
		closers = append(closers, c)
	}

	deps, err := do.Invoke[*cli.Deps](injector)
	if err != nil {
		return nil, closers, fmt.Errorf("resolving dependencies: %w", err)
	}
	logger.Debug("storage ready",
		slog.String("backend", cfg.Storage.Backend),
		slog.String("command", cmd.Name()),
	)
	return deps, closers, nil
}

func registerDependencies(injector *do.RootScope, cmd *cobra.Command) {
	do.Provide(injector, func(i do.Injector) (store.Storage, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return openStorage(cfg.Storage)
	})

	do.Provide(injector, func(i do.Injector) (*auth.Session, error) {
		storage := do.MustInvoke[store.Storage](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return auth.New(storage, store.WithLogger(logger)), nil
	})

	do.Provide(injector, func(i do.Injector) (*todos.List, error) {
		storage := do.MustInvoke[store.Storage](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return todos.Open(storage, store.WithLogger(logger)), nil
	})

	do.Provide(injector, func(i do.Injector) (*ui.Printer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.UI.Theme), nil
	})

	do.Provide(injector, func(i do.Injector) (*cli.Deps, error) {
		return &cli.Deps{
			Session: do.MustInvoke[*auth.Session](i),
			Todos:   do.MustInvoke[*todos.List](i),
			Printer: do.MustInvoke[*ui.Printer](i),
			Logger:  do.MustInvoke[*slog.Logger](i),
		}, nil
	})
}

func openStorage(cfg config.StorageConfig) (store.Storage, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemory(), nil
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o700); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
		db, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		dir, err := jsonstore.Open(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return dir, nil
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
