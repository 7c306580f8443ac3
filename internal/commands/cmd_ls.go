package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskjson/internal/core/logging"
	"github.com/colonyops/taskjson/internal/core/styles"
	"github.com/colonyops/taskjson/internal/core/task"
	"github.com/colonyops/taskjson/internal/taskjson"
	"github.com/colonyops/taskjson/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *taskjson.App

	// flags
	list       string
	jsonOutput bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *taskjson.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List tasks",
		UsageText: "taskjson ls [--list <list>] [--json]",
		Description: `Displays tasks grouped by list with the index used by do, rm and undo.

Without --list the pending and completed lists are shown, plus the removed
list when list.show_removed is set in the config. Use --json to print the
collection (or the selected list) as JSON.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "list",
				Aliases:     []string{"l"},
				Usage:       "only show one list (pending, completed, removed)",
				Destination: &cmd.list,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "ls")

	coll, err := cmd.app.Tasks.List(ctx)
	if err != nil {
		return err
	}

	lists, err := cmd.lists()
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		if cmd.list == "" {
			return iojson.WriteIndent(out, coll)
		}
		tasks, _ := coll.List(lists[0])
		return iojson.WriteIndent(out, tasks)
	}

	return renderCollection(out, coll, lists)
}

func (cmd *LsCmd) lists() ([]task.List, error) {
	if cmd.list != "" {
		l, err := task.ParseList(cmd.list)
		if err != nil {
			return nil, err
		}
		return []task.List{l}, nil
	}

	if cmd.app.Config.List.ShowRemoved {
		return task.Lists, nil
	}
	return []task.List{task.Pending, task.Completed}, nil
}

// renderCollection writes the selected lists of c as styled sections.
func renderCollection(w io.Writer, c task.Collection, lists []task.List) error {
	st := styles.New(w)

	for i, l := range lists {
		tasks, err := c.List(l)
		if err != nil {
			return err
		}

		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintln(w, st.Header.Render(fmt.Sprintf("%s (%d)", l, len(tasks))))

		if len(tasks) == 0 {
			_, _ = fmt.Fprintln(w, st.Muted.Render("  no tasks"))
			continue
		}

		style := st.Pending
		switch l {
		case task.Completed:
			style = st.Completed
		case task.Removed:
			style = st.Removed
		}

		for idx, t := range tasks {
			_, _ = fmt.Fprintf(w, "%s  %s\n", st.Index.Render(fmt.Sprintf("%d", idx)), style.Render(taskText(t)))
		}
	}

	return nil
}

// taskText returns the task's text field, falling back to its uuid.
func taskText(t task.Task) string {
	var text string
	if ok, err := t.Field("text", &text); ok && err == nil && text != "" {
		return text
	}
	return t.UUID
}
