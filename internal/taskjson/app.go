// Package taskjson wires task storage and operations together for the CLI.
package taskjson

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskjson/internal/core/config"
	"github.com/colonyops/taskjson/internal/core/task"
	"github.com/colonyops/taskjson/internal/data/db"
	"github.com/colonyops/taskjson/internal/data/stores"
	"github.com/colonyops/taskjson/internal/store/jsonfile"
)

// App is the central entry point for all taskjson operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Tasks  *TaskService
	Config *config.Config

	closer func() error
}

// NewApp opens the configured store and builds the services on top of it.
func NewApp(ctx context.Context, cfg *config.Config, now func() time.Time, log zerolog.Logger) (*App, error) {
	store, closer, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Tasks:  NewTaskService(store, task.NewManager(now), log),
		Config: cfg,
		closer: closer,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

// OpenStore returns the task.Store selected by cfg.Storage.Backend.
// For sqlite, an existing task file is imported into an empty database.
func OpenStore(ctx context.Context, cfg *config.Config) (task.Store, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendJSON:
		return jsonfile.NewCollectionStore(cfg.TaskFile), func() error { return nil }, nil
	case config.BackendSQLite:
		database, err := db.Open(cfg.DataDir, db.OpenOptions{
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			BusyTimeout:  cfg.Database.BusyTimeout,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}

		store := stores.NewCollectionStore(database)
		if err := stores.MigrateFromJSON(ctx, store, cfg.TaskFile); err != nil {
			_ = database.Close()
			return nil, nil, fmt.Errorf("migrate from JSON: %w", err)
		}

		return store, database.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
