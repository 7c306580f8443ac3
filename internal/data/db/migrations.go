package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/colonyops/taskjson/internal/core/logging"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migration is one versioned schema change, loaded from a pair of
// NNNN_name.up.sql and NNNN_name.down.sql files.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// loadMigrations reads the embedded migrations sorted by version.
// Every version must have exactly one up and one down file.
func loadMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		version, name, up, err := parseFilename(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid migration filename %q: %w", entry.Name(), err)
		}

		content, err := fs.ReadFile(migrationsFS, "migrations/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		}

		dst := &m.DownSQL
		if up {
			dst = &m.UpSQL
		}
		if *dst != "" {
			return nil, fmt.Errorf("duplicate migration file %q", entry.Name())
		}
		*dst = string(content)
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.UpSQL == "" || m.DownSQL == "" {
			return nil, fmt.Errorf("migration %04d must have both up and down files", m.Version)
		}
		migrations = append(migrations, *m)
	}

	slices.SortFunc(migrations, func(a, b Migration) int { return a.Version - b.Version })
	return migrations, nil
}

// parseFilename splits "0001_tasks.up.sql" into its version, name and direction.
func parseFilename(filename string) (version int, name string, up bool, err error) {
	base, isUp := strings.CutSuffix(filename, ".up.sql")
	if !isUp {
		var isDown bool
		base, isDown = strings.CutSuffix(filename, ".down.sql")
		if !isDown {
			return 0, "", false, fmt.Errorf("expected .up.sql or .down.sql suffix")
		}
	}

	num, name, ok := strings.Cut(base, "_")
	if !ok || name == "" {
		return 0, "", false, fmt.Errorf("expected format NNNN_name.{up,down}.sql")
	}

	version, err = strconv.Atoi(num)
	if err != nil {
		return 0, "", false, fmt.Errorf("version %q is not a valid integer: %w", num, err)
	}
	if version <= 0 {
		return 0, "", false, fmt.Errorf("version must be positive, got %d", version)
	}

	return version, name, isUp, nil
}

// migrateUp applies every migration not yet recorded in schema_migrations.
func migrateUp(ctx context.Context, conn *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return err
	}

	logger := logging.Component("db")
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		logger.Debug().Int("version", m.Version).Str("name", m.Name).Msg("applying migration")
		err := runInTx(ctx, conn, m.UpSQL,
			"INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)",
			m.Version, m.Name, time.Now().UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("migration %04d (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}

// MigrateDown reverts the last n applied migrations, newest first.
func MigrateDown(ctx context.Context, conn *sql.DB, n int) error {
	if n <= 0 {
		return fmt.Errorf("n must be positive, got %d", n)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, conn)
	if err != nil {
		return err
	}

	var toRevert []Migration
	for _, m := range slices.Backward(migrations) {
		if applied[m.Version] {
			toRevert = append(toRevert, m)
		}
	}
	if n > len(toRevert) {
		return fmt.Errorf("requested %d down migrations but only %d are applied", n, len(toRevert))
	}

	logger := logging.Component("db")
	for _, m := range toRevert[:n] {
		logger.Info().Int("version", m.Version).Str("name", m.Name).Msg("reverting migration")
		err := runInTx(ctx, conn, m.DownSQL, "DELETE FROM schema_migrations WHERE version = ?", m.Version)
		if err != nil {
			return fmt.Errorf("revert migration %04d (%s): %w", m.Version, m.Name, err)
		}
	}

	return nil
}

// appliedVersions creates schema_migrations if needed and returns the
// versions it records.
func appliedVersions(ctx context.Context, conn *sql.DB) (map[int]bool, error) {
	_, err := conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("creating schema_migrations table: %w", err)
	}

	rows, err := conn.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("querying applied versions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	applied := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning version: %w", err)
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// runInTx executes schemaSQL and the bookkeeping statement in one transaction.
func runInTx(ctx context.Context, conn *sql.DB, schemaSQL, record string, args ...any) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("executing SQL: %w", err)
	}
	if _, err := tx.ExecContext(ctx, record, args...); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}

	return tx.Commit()
}
