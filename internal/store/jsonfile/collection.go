// Package jsonfile stores a task collection as a single task.json document.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/colonyops/taskjson/internal/core/task"
)

// CollectionStore implements task.Store using a JSON file for persistence.
type CollectionStore struct {
	path string
	mu   sync.RWMutex
}

var _ task.Store = (*CollectionStore)(nil)

// NewCollectionStore creates a new JSON file store at the given path.
func NewCollectionStore(path string) *CollectionStore {
	return &CollectionStore{path: path}
}

// Path returns the file the store reads and writes.
func (s *CollectionStore) Path() string {
	return s.path
}

// Load returns the stored collection. A missing or empty file loads as an
// empty collection.
func (s *CollectionStore) Load(ctx context.Context) (task.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := load(s.path)
	if os.IsNotExist(err) {
		return task.New(), nil
	}
	return c, err
}

// Save writes c to disk atomically.
func (s *CollectionStore) Save(ctx context.Context, c task.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return save(s.path, c)
}

// ReadFile decodes and validates the collection stored at path.
func ReadFile(path string) (task.Collection, error) {
	return load(path)
}

func load(path string) (task.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return task.Collection{}, err
	}

	if len(data) == 0 {
		return task.New(), nil
	}

	var c task.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return task.Collection{}, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return task.Collection{}, fmt.Errorf("validate %s: %w", path, err)
	}

	return c, nil
}

// save writes the collection next to path and renames it into place.
func save(path string, c task.Collection) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
