package task

import (
	"fmt"

	"github.com/hay-kot/criterio"
)

// jsonKeys maps lists to their key in the task.json document, used in field paths.
var jsonKeys = map[List]string{
	Pending:   "todo",
	Completed: "done",
	Removed:   "removed",
}

// Validate checks that every task has a unique, non-empty uuid and parsable
// timestamps. All problems are reported together as field errors.
func (c Collection) Validate() error {
	var errs criterio.FieldErrorsBuilder

	seen := make(map[string]string)
	for _, l := range Lists {
		tasks, _ := c.List(l)
		for i, t := range tasks {
			field := fmt.Sprintf("%s[%d]", jsonKeys[l], i)

			switch prev, dup := seen[t.UUID]; {
			case t.UUID == "":
				errs = errs.Append(field+".uuid", ErrMissingID)
			case dup:
				errs = errs.Append(field+".uuid", fmt.Errorf("%w %q (also at %s)", ErrDuplicate, t.UUID, prev))
			default:
				seen[t.UUID] = field
			}

			if _, err := parseField(t, keyStart, t.Start); err != nil {
				errs = errs.Append(field+".start", err)
			}
			if _, err := parseField(t, keyModified, t.Modified); err != nil {
				errs = errs.Append(field+".modified", err)
			}
			if t.End != "" {
				if _, err := parseField(t, keyEnd, t.End); err != nil {
					errs = errs.Append(field+".end", err)
				}
			}
		}
	}

	return errs.ToError()
}
