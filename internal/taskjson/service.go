package taskjson

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/taskjson/internal/core/logging"
	"github.com/colonyops/taskjson/internal/core/task"
)

// Selector picks tasks in one list by position, by uuid, or both.
type Selector struct {
	Indexes []int
	UUIDs   []string
}

// IsEmpty reports whether the selector names no tasks.
func (s Selector) IsEmpty() bool {
	return len(s.Indexes) == 0 && len(s.UUIDs) == 0
}

// resolve returns the union of the selector's positions and the positions
// of its uuids in list l.
func (s Selector) resolve(c task.Collection, l task.List) ([]int, error) {
	byID, err := task.Indexes(c, l, s.UUIDs)
	if err != nil {
		return nil, err
	}

	positions := append(slices.Clone(s.Indexes), byID...)
	slices.Sort(positions)
	return slices.Compact(positions), nil
}

// TaskService runs task operations against a store: each call loads the
// collection, applies one operation and saves the result.
type TaskService struct {
	store   task.Store
	manager *task.Manager
	log     zerolog.Logger
	newID   func() string

	// mu serializes load-modify-save cycles within the process.
	mu sync.Mutex
}

// NewTaskService creates a new TaskService.
func NewTaskService(store task.Store, manager *task.Manager, log zerolog.Logger) *TaskService {
	return &TaskService{
		store:   store,
		manager: manager,
		log:     log.With().Str("cmp", "tasks").Logger().Hook(logging.ContextHook{}),
		newID:   uuid.NewString,
	}
}

// Init writes an empty collection unless one is already stored.
// It reports whether anything was written.
func (s *TaskService) Init(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load tasks: %w", err)
	}
	if c.Len() > 0 {
		return false, nil
	}

	if err := s.store.Save(ctx, task.New()); err != nil {
		return false, fmt.Errorf("save tasks: %w", err)
	}
	return true, nil
}

// List returns the stored collection.
func (s *TaskService) List(ctx context.Context) (task.Collection, error) {
	c, err := s.store.Load(ctx)
	if err != nil {
		return task.Collection{}, fmt.Errorf("load tasks: %w", err)
	}
	return c, nil
}

// Add creates a pending task with a new uuid. text and fields become opaque
// fields of the task.
func (s *TaskService) Add(ctx context.Context, text string, fields map[string]any) (task.Task, error) {
	t := task.Task{UUID: s.newID()}
	if err := t.SetField("text", text); err != nil {
		return task.Task{}, err
	}
	for name, v := range fields {
		if err := t.SetField(name, v); err != nil {
			return task.Task{}, err
		}
	}

	var added task.Task
	err := s.update(ctx, func(c *task.Collection) error {
		if err := s.manager.Add(c, t); err != nil {
			return err
		}
		added = c.Pending[len(c.Pending)-1]
		return nil
	})
	if err != nil {
		return task.Task{}, fmt.Errorf("add task: %w", err)
	}

	s.log.Debug().Ctx(ctx).Str("uuid", added.UUID).Msg("added task")
	return added, nil
}

// Do completes the selected pending tasks and returns how many moved.
func (s *TaskService) Do(ctx context.Context, sel Selector) (int, error) {
	ctx = logging.WithList(ctx, string(task.Pending))

	var moved int
	err := s.update(ctx, func(c *task.Collection) error {
		positions, err := sel.resolve(*c, task.Pending)
		if err != nil {
			return err
		}

		before := len(c.Pending)
		s.manager.Complete(c, positions)
		moved = before - len(c.Pending)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("complete tasks: %w", err)
	}

	s.log.Debug().Ctx(ctx).Int("count", moved).Msg("completed tasks")
	return moved, nil
}

// Remove moves the selected tasks of list l to the removed list and returns
// how many moved.
func (s *TaskService) Remove(ctx context.Context, l task.List, sel Selector) (int, error) {
	ctx = logging.WithList(ctx, string(l))

	var moved int
	err := s.update(ctx, func(c *task.Collection) error {
		positions, err := sel.resolve(*c, l)
		if err != nil {
			return err
		}

		src, err := c.List(l)
		if err != nil {
			return err
		}
		moved = countInRange(positions, len(src))

		return s.manager.Remove(c, l, positions)
	})
	if err != nil {
		return 0, fmt.Errorf("remove tasks: %w", err)
	}

	s.log.Debug().Ctx(ctx).Int("count", moved).Msg("removed tasks")
	return moved, nil
}

// Restore moves the selected tasks out of the removed or completed list and
// returns how many moved.
func (s *TaskService) Restore(ctx context.Context, source task.List, sel Selector) (int, error) {
	ctx = logging.WithList(ctx, string(source))

	var moved int
	err := s.update(ctx, func(c *task.Collection) error {
		positions, err := sel.resolve(*c, source)
		if err != nil {
			return err
		}

		src, err := c.List(source)
		if err != nil {
			return err
		}
		before := len(src)

		if err := s.manager.Restore(c, source, positions); err != nil {
			return err
		}

		src, _ = c.List(source)
		moved = before - len(src)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("restore tasks: %w", err)
	}

	s.log.Debug().Ctx(ctx).Int("count", moved).Msg("restored tasks")
	return moved, nil
}

// Merge merges the stored collection with others and stores the result.
func (s *TaskService) Merge(ctx context.Context, others ...task.Collection) (task.Collection, error) {
	var merged task.Collection
	err := s.update(ctx, func(c *task.Collection) error {
		m, err := task.Merge(append([]task.Collection{*c}, others...)...)
		if err != nil {
			return err
		}
		*c = m
		merged = m
		return nil
	})
	if err != nil {
		return task.Collection{}, fmt.Errorf("merge tasks: %w", err)
	}

	s.log.Debug().Ctx(ctx).Int("inputs", len(others)).Int("tasks", merged.Len()).Msg("merged tasks")
	return merged, nil
}

// update runs fn against the stored collection and saves the result. Nothing
// is saved when fn fails.
func (s *TaskService) update(ctx context.Context, fn func(c *task.Collection) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	if err := fn(&c); err != nil {
		return err
	}

	if err := s.store.Save(ctx, c); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func countInRange(positions []int, n int) int {
	count := 0
	for _, p := range positions {
		if p >= 0 && p < n {
			count++
		}
	}
	return count
}
