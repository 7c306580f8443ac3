package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/colonyops/taskjson/internal/core/task"
	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file loads empty", func(t *testing.T) {
		store := NewCollectionStore(filepath.Join(t.TempDir(), "task.json"))

		c, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, task.New(), c)
	})

	t.Run("empty file loads empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "task.json")
		require.NoError(t, os.WriteFile(path, nil, 0o644))

		c, err := NewCollectionStore(path).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("save and load round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "task.json")
		store := NewCollectionStore(path)

		c := task.New()
		c.Pending = []task.Task{{
			UUID:     "a",
			Start:    "2024-01-01T00:00:00.000Z",
			Modified: "2024-01-01T00:00:00.000Z",
			Fields:   map[string]json.RawMessage{"text": json.RawMessage(`"buy milk"`)},
		}}
		c.Completed = []task.Task{{
			UUID:     "b",
			Start:    "2024-01-01T00:00:00.000Z",
			End:      "2024-01-02T00:00:00.000Z",
			Modified: "2024-01-02T00:00:00.000Z",
		}}

		require.NoError(t, store.Save(ctx, c))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, c, got)

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file should not be left behind")
	})

	t.Run("writes task.json keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "task.json")
		require.NoError(t, NewCollectionStore(path).Save(ctx, task.Collection{}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, `{"todo":[],"done":[],"removed":[]}`, string(data))
	})

	t.Run("invalid document fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "task.json")
		doc := `{"todo":[{"uuid":"a","start":"2024-01-01","modified":"2024-01-01"}],"removed":[{"uuid":"a","start":"2024-01-01","modified":"2024-01-01"}]}`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

		_, err := NewCollectionStore(path).Load(ctx)

		var fieldErrs criterio.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		require.Len(t, fieldErrs, 1)
		assert.Equal(t, "removed[0].uuid", fieldErrs[0].Field)
		assert.ErrorIs(t, fieldErrs[0].Err, task.ErrDuplicate)
	})

	t.Run("malformed json fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "task.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

		_, err := ReadFile(path)
		assert.ErrorContains(t, err, "decode")
	})
}
