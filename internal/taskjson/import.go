package taskjson

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/taskjson/internal/core/task"
	"github.com/colonyops/taskjson/internal/store/jsonfile"
)

// ImportResult describes a completed import.
type ImportResult struct {
	Files []string `json:"files"`
	Tasks int      `json:"tasks"`
}

// ExpandSources expands doublestar patterns into a sorted, de-duplicated list
// of files. A pattern without glob characters must name an existing file.
func ExpandSources(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		if len(matches) == 0 && !hasMeta(pattern) {
			return nil, fmt.Errorf("import source %q does not exist", pattern)
		}

		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				return nil, err
			}
			files = append(files, abs)
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// Import merges every collection file matched by patterns into the store.
// Files are read and validated before anything is merged, so one bad file
// leaves the store untouched. The store's own file never counts as a
// source.
func (s *TaskService) Import(ctx context.Context, patterns []string, exclude string) (ImportResult, error) {
	files, err := ExpandSources(patterns)
	if err != nil {
		return ImportResult{}, err
	}

	if exclude != "" {
		if abs, err := filepath.Abs(exclude); err == nil {
			files = slices.DeleteFunc(files, func(f string) bool { return f == abs })
		}
	}

	collections := make([]task.Collection, 0, len(files))
	for _, f := range files {
		c, err := jsonfile.ReadFile(f)
		if err != nil {
			return ImportResult{}, fmt.Errorf("import %s: %w", f, err)
		}
		collections = append(collections, c)
	}

	merged, err := s.Merge(ctx, collections...)
	if err != nil {
		return ImportResult{}, err
	}

	return ImportResult{Files: files, Tasks: merged.Len()}, nil
}

func hasMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{', '\\':
			return true
		}
	}
	return false
}
