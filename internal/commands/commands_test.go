package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskjson/internal/core/config"
	"github.com/colonyops/taskjson/internal/core/task"
	"github.com/colonyops/taskjson/internal/store/jsonfile"
	"github.com/colonyops/taskjson/internal/taskjson"
)

type testCLI struct {
	t    *testing.T
	dir  string
	app  *taskjson.App
	root func() *cli.Command
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()

	dir := t.TempDir()
	cfg, err := config.Load("", dir)
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	app, err := taskjson.NewApp(context.Background(), cfg, now, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	flags := &Flags{DataDir: dir}
	root := func() *cli.Command {
		cmd := &cli.Command{Name: "taskjson"}
		cmd = NewInitCmd(flags, app).Register(cmd)
		cmd = NewAddCmd(flags, app).Register(cmd)
		cmd = NewLsCmd(flags, app).Register(cmd)
		cmd = NewDoCmd(flags, app).Register(cmd)
		cmd = NewRmCmd(flags, app).Register(cmd)
		cmd = NewUndoCmd(flags, app).Register(cmd)
		cmd = NewMergeCmd(flags, app).Register(cmd)
		cmd = NewImportCmd(flags, app).Register(cmd)
		return cmd
	}

	return &testCLI{t: t, dir: dir, app: app, root: root}
}

func (tc *testCLI) run(args ...string) (string, error) {
	tc.t.Helper()

	var buf bytes.Buffer
	cmd := tc.root()
	cmd.Writer = &buf
	err := cmd.Run(context.Background(), append([]string{"taskjson"}, args...))
	return buf.String(), err
}

func (tc *testCLI) collection() task.Collection {
	tc.t.Helper()

	out, err := tc.run("ls", "--json")
	require.NoError(tc.t, err)

	var c task.Collection
	require.NoError(tc.t, json.Unmarshal([]byte(out), &c))
	return c
}

func texts(t *testing.T, tasks []task.Task) []string {
	t.Helper()
	out := make([]string, 0, len(tasks))
	for _, tk := range tasks {
		var text string
		_, err := tk.Field("text", &text)
		require.NoError(t, err)
		out = append(out, text)
	}
	return out
}

func TestInit(t *testing.T) {
	tc := newTestCLI(t)

	out, err := tc.run("init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized json store")
	assert.FileExists(t, filepath.Join(tc.dir, "task.json"))

	_, err = tc.run("add", "keep", "me")
	require.NoError(t, err)

	out, err = tc.run("init")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to do")
	assert.Len(t, tc.collection().Pending, 1)
}

func TestAddDoRmUndo(t *testing.T) {
	tc := newTestCLI(t)

	for _, text := range []string{"buy milk", "call mom", "file taxes"} {
		_, err := tc.run("add", text)
		require.NoError(t, err)
	}

	out, err := tc.run("do", "0", "2")
	require.NoError(t, err)
	assert.Equal(t, "completed 2 task(s)\n", out)

	c := tc.collection()
	assert.Equal(t, []string{"call mom"}, texts(t, c.Pending))
	assert.Equal(t, []string{"buy milk", "file taxes"}, texts(t, c.Completed))
	for _, tk := range c.Completed {
		assert.Equal(t, "2024-06-01T09:00:00.000Z", tk.End)
	}

	_, err = tc.run("rm", "--list", "done", "--uuid", c.Completed[1].UUID)
	require.NoError(t, err)

	_, err = tc.run("rm", "0")
	require.NoError(t, err)

	c = tc.collection()
	assert.Empty(t, c.Pending)
	assert.Equal(t, []string{"file taxes", "call mom"}, texts(t, c.Removed))

	out, err = tc.run("undo", "0", "1")
	require.NoError(t, err)
	assert.Equal(t, "restored 2 task(s)\n", out)

	c = tc.collection()
	assert.Empty(t, c.Removed)
	assert.Equal(t, []string{"call mom"}, texts(t, c.Pending))
	assert.Equal(t, []string{"buy milk", "file taxes"}, texts(t, c.Completed))

	_, err = tc.run("undo", "--list", "completed", "0")
	require.NoError(t, err)
	assert.Equal(t, []string{"call mom", "buy milk"}, texts(t, tc.collection().Pending))
}

func TestAdd_Fields(t *testing.T) {
	tc := newTestCLI(t)

	_, err := tc.run("add", "--field", "priority=H", "--field", `projects=["home"]`, "fix", "sink")
	require.NoError(t, err)

	c := tc.collection()
	require.Len(t, c.Pending, 1)
	assert.Equal(t, json.RawMessage(`"H"`), c.Pending[0].Fields["priority"])
	assert.Equal(t, json.RawMessage(`["home"]`), c.Pending[0].Fields["projects"])
	assert.Equal(t, []string{"fix sink"}, texts(t, c.Pending))

	_, err = tc.run("add", "--field", "novalue", "x")
	assert.Error(t, err)

	_, err = tc.run("add")
	assert.Error(t, err)
}

func TestSelectionErrors(t *testing.T) {
	tc := newTestCLI(t)
	_, err := tc.run("add", "a")
	require.NoError(t, err)

	_, err = tc.run("do")
	require.ErrorIs(t, err, errNoSelection)

	_, err = tc.run("do", "first")
	assert.Error(t, err)

	_, err = tc.run("rm", "--list", "archive", "0")
	require.ErrorIs(t, err, task.ErrInvalidList)

	_, err = tc.run("undo", "--list", "pending", "0")
	require.ErrorIs(t, err, task.ErrInvalidList)

	assert.Len(t, tc.collection().Pending, 1)
}

func TestLs_Text(t *testing.T) {
	tc := newTestCLI(t)
	_, err := tc.run("add", "buy milk")
	require.NoError(t, err)
	_, err = tc.run("add", "call mom")
	require.NoError(t, err)
	_, err = tc.run("do", "1")
	require.NoError(t, err)

	out, err := tc.run("ls")
	require.NoError(t, err)
	assert.Contains(t, out, "pending (1)")
	assert.Contains(t, out, "completed (1)")
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "call mom")
	assert.NotContains(t, out, "removed")

	out, err = tc.run("ls", "--list", "removed")
	require.NoError(t, err)
	assert.Contains(t, out, "removed (0)")
	assert.Contains(t, out, "no tasks")
}

func TestLs_JSONSingleList(t *testing.T) {
	tc := newTestCLI(t)
	_, err := tc.run("add", "a")
	require.NoError(t, err)

	out, err := tc.run("ls", "--list", "todo", "--json")
	require.NoError(t, err)

	var tasks []task.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	assert.Len(t, tasks, 1)
}

func TestMerge_FromFile(t *testing.T) {
	tc := newTestCLI(t)
	_, err := tc.run("add", "local")
	require.NoError(t, err)

	other := task.New()
	other.Pending = []task.Task{{UUID: "remote", Start: "2000-01-01", Modified: "2000-01-01"}}
	path := filepath.Join(t.TempDir(), "other.json")
	require.NoError(t, jsonfile.NewCollectionStore(path).Save(context.Background(), other))

	out, err := tc.run("merge", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "merged: 2 pending, 0 completed, 0 removed\n", out)

	c := tc.collection()
	require.Len(t, c.Pending, 2)
	assert.Equal(t, "remote", c.Pending[0].UUID, "older start sorts first")
}

func TestMerge_InvalidInput(t *testing.T) {
	tc := newTestCLI(t)

	path := filepath.Join(t.TempDir(), "dup.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"todo":[{"uuid":"a","start":"2024-01-01","modified":"2024-01-01"}],"done":[{"uuid":"a","start":"2024-01-01","modified":"2024-01-01"}]}`), 0o644))

	_, err := tc.run("merge", "-f", path)

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "done[0].uuid", fieldErrs[0].Field)
}

func TestImport(t *testing.T) {
	tc := newTestCLI(t)

	src := t.TempDir()
	backup := task.New()
	backup.Removed = []task.Task{{UUID: "old", Start: "2023-01-01", Modified: "2023-01-02"}}
	require.NoError(t, jsonfile.NewCollectionStore(filepath.Join(src, "a", "task.json")).Save(context.Background(), backup))

	out, err := tc.run("import", filepath.Join(src, "**", "task.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "1 task(s) in store")

	assert.Len(t, tc.collection().Removed, 1)

	_, err = tc.run("import")
	assert.Error(t, err, "no patterns configured")
}
