package task

import "fmt"

// List selects one of the three lists of a Collection.
type List string

const (
	Pending   List = "pending"
	Completed List = "completed"
	Removed   List = "removed"
)

// Lists holds every list in the order merges process them.
var Lists = []List{Pending, Completed, Removed}

// IsValid reports whether l is one of the known lists.
func (l List) IsValid() bool {
	switch l {
	case Pending, Completed, Removed:
		return true
	}
	return false
}

// ParseList parses a list name. The task.json names "todo" and "done" are
// accepted for pending and completed.
func ParseList(s string) (List, error) {
	switch s {
	case "pending", "todo":
		return Pending, nil
	case "completed", "done":
		return Completed, nil
	case "removed":
		return Removed, nil
	}
	return "", fmt.Errorf("%w: %q (must be one of pending, completed, removed)", ErrInvalidList, s)
}
