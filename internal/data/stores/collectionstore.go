// Package stores implements task.Store on top of sqlite.
package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/colonyops/taskjson/internal/core/task"
	"github.com/colonyops/taskjson/internal/data/db"
)

const (
	saveRetries = 3
	retryWait   = 50 * time.Millisecond
)

// CollectionStore implements task.Store using SQLite. Each task is one row
// holding its list, its position in that list and its JSON encoding.
type CollectionStore struct {
	db *db.DB
}

var _ task.Store = (*CollectionStore)(nil)

// NewCollectionStore creates a new SQLite-backed collection store.
func NewCollectionStore(db *db.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

// Load returns the stored collection with every list in position order.
func (s *CollectionStore) Load(ctx context.Context) (task.Collection, error) {
	rows, err := s.db.Conn().QueryContext(ctx, "SELECT uuid, list, body FROM tasks ORDER BY list, position")
	if err != nil {
		return task.Collection{}, fmt.Errorf("list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	c := task.New()
	for rows.Next() {
		var (
			uuid string
			list string
			body string
		)
		if err := rows.Scan(&uuid, &list, &body); err != nil {
			return task.Collection{}, fmt.Errorf("scan task: %w", err)
		}

		var t task.Task
		if err := json.Unmarshal([]byte(body), &t); err != nil {
			return task.Collection{}, fmt.Errorf("decode task %s: %w", uuid, err)
		}

		switch task.List(list) {
		case task.Pending:
			c.Pending = append(c.Pending, t)
		case task.Completed:
			c.Completed = append(c.Completed, t)
		case task.Removed:
			c.Removed = append(c.Removed, t)
		default:
			return task.Collection{}, fmt.Errorf("task %s: %w: %q", uuid, task.ErrInvalidList, list)
		}
	}
	if err := rows.Err(); err != nil {
		return task.Collection{}, fmt.Errorf("list tasks: %w", err)
	}

	if err := c.Validate(); err != nil {
		return task.Collection{}, fmt.Errorf("validate stored tasks: %w", err)
	}

	return c, nil
}

// Save replaces the stored snapshot with c in one transaction, retrying
// while the database is busy.
func (s *CollectionStore) Save(ctx context.Context, c task.Collection) error {
	var err error
	wait := retryWait
	for attempt := 0; attempt < saveRetries; attempt++ {
		err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
			return replaceAll(ctx, tx, c)
		})
		if err == nil || !IsBusyError(err) {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			wait *= 2
		}
	}
	if err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func replaceAll(ctx context.Context, tx *sql.Tx, c task.Collection) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks"); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO tasks (uuid, list, position, body) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, l := range task.Lists {
		tasks, _ := c.List(l)
		for i, t := range tasks {
			body, err := json.Marshal(t)
			if err != nil {
				return fmt.Errorf("encode task %s: %w", t.UUID, err)
			}
			if _, err := stmt.ExecContext(ctx, t.UUID, string(l), i, string(body)); err != nil {
				return fmt.Errorf("insert task %s: %w", t.UUID, err)
			}
		}
	}

	return nil
}
