package stores

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/colonyops/taskjson/internal/core/task"
	"github.com/colonyops/taskjson/internal/data/db"
	"github.com/colonyops/taskjson/internal/store/jsonfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *CollectionStore {
	t.Helper()
	database, err := db.Open(t.TempDir(), db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return NewCollectionStore(database)
}

func sample() task.Collection {
	c := task.New()
	c.Pending = []task.Task{
		{UUID: "b", Start: "2024-01-02", Modified: "2024-01-02"},
		{UUID: "a", Start: "2024-01-01", Modified: "2024-01-03", Fields: map[string]json.RawMessage{
			"text":     json.RawMessage(`"water plants"`),
			"projects": json.RawMessage(`["home"]`),
		}},
	}
	c.Completed = []task.Task{{UUID: "c", Start: "2024-01-01", End: "2024-01-04", Modified: "2024-01-04"}}
	c.Removed = []task.Task{{UUID: "d", Start: "2024-01-01", Modified: "2024-01-05"}}
	return c
}

func TestCollectionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty database loads empty collection", func(t *testing.T) {
		c, err := openStore(t).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, task.New(), c)
	})

	t.Run("save and load keeps lists and order", func(t *testing.T) {
		store := openStore(t)
		want := sample()

		require.NoError(t, store.Save(ctx, want))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("save replaces previous snapshot", func(t *testing.T) {
		store := openStore(t)
		require.NoError(t, store.Save(ctx, sample()))

		next := task.New()
		next.Pending = []task.Task{{UUID: "z", Start: "2024-02-01", Modified: "2024-02-01"}}
		require.NoError(t, store.Save(ctx, next))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, next, got)
	})

	t.Run("duplicate uuid is rejected", func(t *testing.T) {
		store := openStore(t)

		c := task.New()
		c.Pending = []task.Task{{UUID: "a", Start: "2024-01-01", Modified: "2024-01-01"}}
		c.Removed = []task.Task{{UUID: "a", Start: "2024-01-01", Modified: "2024-01-01"}}

		assert.Error(t, store.Save(ctx, c))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Len(), "failed save is rolled back")
	})
}

func TestMigrateFromJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("imports and renames file", func(t *testing.T) {
		store := openStore(t)
		path := filepath.Join(t.TempDir(), "task.json")
		require.NoError(t, jsonfile.NewCollectionStore(path).Save(ctx, sample()))

		require.NoError(t, MigrateFromJSON(ctx, store, path))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, sample(), got)

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(path + MigratedSuffix)
		assert.NoError(t, err)
	})

	t.Run("missing file is a no-op", func(t *testing.T) {
		store := openStore(t)
		require.NoError(t, MigrateFromJSON(ctx, store, filepath.Join(t.TempDir(), "task.json")))
	})

	t.Run("non-empty store is left alone", func(t *testing.T) {
		store := openStore(t)
		existing := task.New()
		existing.Pending = []task.Task{{UUID: "keep", Start: "2024-01-01", Modified: "2024-01-01"}}
		require.NoError(t, store.Save(ctx, existing))

		path := filepath.Join(t.TempDir(), "task.json")
		require.NoError(t, jsonfile.NewCollectionStore(path).Save(ctx, sample()))

		require.NoError(t, MigrateFromJSON(ctx, store, path))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, existing, got)

		_, err = os.Stat(path)
		assert.NoError(t, err, "file is kept when nothing was imported")
	})
}
