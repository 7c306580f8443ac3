package task

import (
	"fmt"
	"time"
)

// Manager moves tasks between the lists of a collection, stamping the
// tasks it touches with the time reported by its clock.
//
// A Manager holds no collection state; callers serialize access to a given
// Collection themselves.
type Manager struct {
	now func() time.Time
}

// NewManager creates a Manager. A nil clock uses time.Now.
func NewManager(now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{now: now}
}

func (m *Manager) stamp() string {
	return FormatTime(m.now())
}

// Add appends t to the pending list. Start and Modified are stamped when empty.
func (m *Manager) Add(c *Collection, t Task) error {
	if t.UUID == "" {
		return ErrMissingID
	}
	if _, _, ok := c.Find(t.UUID); ok {
		return ErrDuplicate
	}

	date := m.stamp()
	if t.Start == "" {
		t.Start = date
	}
	if t.Modified == "" {
		t.Modified = date
	}

	c.Pending = append(c.Pending, t)
	return nil
}

// Remove moves the tasks at positions of list l to the end of the removed list.
// Positions outside the list are ignored.
func (m *Manager) Remove(c *Collection, l List, positions []int) error {
	src, err := c.list(l)
	if err != nil {
		return err
	}

	date := m.stamp()
	matched := take(src, positions)
	for i := range matched {
		matched[i].Modified = date
	}

	c.Removed = append(c.Removed, matched...)
	return nil
}

// Complete moves the tasks at positions of the pending list to the completed
// list, setting their end time. Positions outside the list are ignored.
func (m *Manager) Complete(c *Collection, positions []int) {
	date := m.stamp()
	matched := take(&c.Pending, positions)
	for i := range matched {
		matched[i].End = date
		matched[i].Modified = date
	}

	c.Completed = append(c.Completed, matched...)
}

// Restore moves the tasks at positions of source back out of it.
//
// From Removed, tasks with an end time return to Completed and the rest to
// Pending. From Completed, every task returns to Pending with its end time
// cleared. Any other source returns ErrInvalidList.
func (m *Manager) Restore(c *Collection, source List, positions []int) error {
	if source != Removed && source != Completed {
		return fmt.Errorf("%w: cannot restore from %q", ErrInvalidList, string(source))
	}

	src, err := c.list(source)
	if err != nil {
		return err
	}

	date := m.stamp()
	matched := take(src, positions)

	var pending, completed []Task
	for _, t := range matched {
		t.Modified = date
		if source == Removed && t.Completed() {
			completed = append(completed, t)
			continue
		}
		t.End = ""
		pending = append(pending, t)
	}

	c.Pending = append(c.Pending, pending...)
	c.Completed = append(c.Completed, completed...)
	return nil
}

// take removes the tasks at positions from *tasks and returns them in list order.
func take(tasks *[]Task, positions []int) []Task {
	if len(positions) == 0 {
		return nil
	}

	set := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		set[p] = struct{}{}
	}

	kept := make([]Task, 0, len(*tasks))
	var matched []Task
	for i, t := range *tasks {
		if _, ok := set[i]; ok {
			matched = append(matched, t)
			continue
		}
		kept = append(kept, t)
	}

	*tasks = kept
	return matched
}
