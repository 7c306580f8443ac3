package stores

import (
	"context"
	"fmt"
	"os"

	"github.com/colonyops/taskjson/internal/core/logging"
	"github.com/colonyops/taskjson/internal/core/task"
	"github.com/colonyops/taskjson/internal/store/jsonfile"
)

// MigratedSuffix is appended to a task file once it has been imported.
const MigratedSuffix = ".migrated"

// MigrateFromJSON imports the task file at jsonPath into store when the
// store is empty, then renames the file so the import runs only once.
// It is a no-op when the file does not exist.
func MigrateFromJSON(ctx context.Context, store task.Store, jsonPath string) error {
	if _, err := os.Stat(jsonPath); os.IsNotExist(err) {
		return nil
	}

	existing, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load existing tasks: %w", err)
	}
	if existing.Len() > 0 {
		return nil
	}

	c, err := jsonfile.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", jsonPath, err)
	}

	if err := store.Save(ctx, c); err != nil {
		return fmt.Errorf("save migrated tasks: %w", err)
	}

	if err := os.Rename(jsonPath, jsonPath+MigratedSuffix); err != nil {
		return fmt.Errorf("rename migrated file: %w", err)
	}

	logging.Component("stores").Info().
		Str("path", jsonPath).
		Int("tasks", c.Len()).
		Msg("migrated task file into database")

	return nil
}
