package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskjson/internal/taskjson"
)

var errNoSelection = errors.New("no tasks selected: pass one or more indexes or --uuid")

func uuidFlag(dst *[]string) *cli.StringSliceFlag {
	return &cli.StringSliceFlag{
		Name:        "uuid",
		Aliases:     []string{"u"},
		Usage:       "select a task by uuid (repeatable)",
		Destination: dst,
	}
}

// parseSelector builds a selector from positional index arguments and uuids.
func parseSelector(args []string, uuids []string) (taskjson.Selector, error) {
	sel := taskjson.Selector{UUIDs: uuids}
	for _, arg := range args {
		i, err := strconv.Atoi(arg)
		if err != nil {
			return taskjson.Selector{}, fmt.Errorf("invalid index %q", arg)
		}
		if i < 0 {
			return taskjson.Selector{}, fmt.Errorf("invalid index %d: must not be negative", i)
		}
		sel.Indexes = append(sel.Indexes, i)
	}

	if sel.IsEmpty() {
		return taskjson.Selector{}, errNoSelection
	}
	return sel, nil
}
