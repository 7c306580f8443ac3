package task

import (
	"encoding/json"
	"fmt"
)

// Collection partitions tasks into the pending, completed and removed lists.
// A uuid appears in at most one list.
type Collection struct {
	Pending   []Task `json:"todo"`
	Completed []Task `json:"done"`
	Removed   []Task `json:"removed"`
}

// New returns an empty collection.
func New() Collection {
	return Collection{
		Pending:   []Task{},
		Completed: []Task{},
		Removed:   []Task{},
	}
}

// list returns a pointer to the slice selected by l.
func (c *Collection) list(l List) (*[]Task, error) {
	switch l {
	case Pending:
		return &c.Pending, nil
	case Completed:
		return &c.Completed, nil
	case Removed:
		return &c.Removed, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidList, string(l))
}

// List returns the tasks of the selected list.
func (c Collection) List(l List) ([]Task, error) {
	tasks, err := c.list(l)
	if err != nil {
		return nil, err
	}
	return *tasks, nil
}

// Len returns the number of tasks across all lists.
func (c Collection) Len() int {
	return len(c.Pending) + len(c.Completed) + len(c.Removed)
}

// Find returns the list and position holding uuid.
func (c Collection) Find(uuid string) (List, int, bool) {
	for _, l := range Lists {
		tasks, _ := c.List(l)
		for i, t := range tasks {
			if t.UUID == uuid {
				return l, i, true
			}
		}
	}
	return "", 0, false
}

// Clone returns a deep copy of c.
func (c Collection) Clone() Collection {
	out := New()
	for _, t := range c.Pending {
		out.Pending = append(out.Pending, t.Clone())
	}
	for _, t := range c.Completed {
		out.Completed = append(out.Completed, t.Clone())
	}
	for _, t := range c.Removed {
		out.Removed = append(out.Removed, t.Clone())
	}
	return out
}

// Indexes returns the positions in list l whose uuid is in uuids, in list order.
// Unknown uuids are ignored.
func Indexes(c Collection, l List, uuids []string) ([]int, error) {
	tasks, err := c.List(l)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(uuids))
	for _, id := range uuids {
		set[id] = struct{}{}
	}

	indexes := []int{}
	for i, t := range tasks {
		if _, ok := set[t.UUID]; ok {
			indexes = append(indexes, i)
		}
	}
	return indexes, nil
}

// MarshalJSON encodes nil lists as empty arrays.
func (c Collection) MarshalJSON() ([]byte, error) {
	type plain Collection
	out := plain(c)
	if out.Pending == nil {
		out.Pending = []Task{}
	}
	if out.Completed == nil {
		out.Completed = []Task{}
	}
	if out.Removed == nil {
		out.Removed = []Task{}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes missing or null lists as empty lists.
func (c *Collection) UnmarshalJSON(data []byte) error {
	type plain Collection
	var in plain
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Pending == nil {
		in.Pending = []Task{}
	}
	if in.Completed == nil {
		in.Completed = []Task{}
	}
	if in.Removed == nil {
		in.Removed = []Task{}
	}
	*c = Collection(in)
	return nil
}
