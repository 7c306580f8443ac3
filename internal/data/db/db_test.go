package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(t.TempDir(), DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for i, m := range migrations {
		assert.Equal(t, i+1, m.Version)
		assert.NotEmpty(t, m.UpSQL)
		assert.NotEmpty(t, m.DownSQL)
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename string
		version  int
		name     string
		up       bool
		wantErr  bool
	}{
		{filename: "0001_tasks.up.sql", version: 1, name: "tasks", up: true},
		{filename: "0012_add_index.down.sql", version: 12, name: "add_index"},
		{filename: "0001_tasks.sql", wantErr: true},
		{filename: "0001.up.sql", wantErr: true},
		{filename: "abcd_tasks.up.sql", wantErr: true},
		{filename: "0000_tasks.up.sql", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, up, err := parseFilename(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.version, version)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.up, up)
		})
	}
}

func TestOpen_AppliesMigrations(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	var count int
	require.NoError(t, database.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count))

	migrations, err := loadMigrations()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), count)

	_, err = database.Conn().ExecContext(ctx, "SELECT 1 FROM tasks LIMIT 0")
	require.NoError(t, err, "tasks table should exist")
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()

	first, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(dir, DefaultOpenOptions())
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestMigrateDown(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, MigrateDown(ctx, database.Conn(), 1))

	_, err := database.Conn().ExecContext(ctx, "SELECT 1 FROM tasks LIMIT 0")
	assert.Error(t, err, "tasks table should be dropped")

	assert.Error(t, MigrateDown(ctx, database.Conn(), 1), "nothing left to revert")
	assert.Error(t, MigrateDown(ctx, database.Conn(), 0))
}
