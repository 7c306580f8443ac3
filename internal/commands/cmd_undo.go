package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskjson/internal/core/logging"
	"github.com/colonyops/taskjson/internal/core/task"
	"github.com/colonyops/taskjson/internal/taskjson"
)

type UndoCmd struct {
	flags *Flags
	app   *taskjson.App

	// flags
	list  string
	uuids []string
}

// NewUndoCmd creates a new undo command
func NewUndoCmd(flags *Flags, app *taskjson.App) *UndoCmd {
	return &UndoCmd{flags: flags, app: app}
}

// Register adds the undo command to the application
func (cmd *UndoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "undo",
		Usage:     "Restore removed or completed tasks",
		UsageText: "taskjson undo [--list removed|completed] [--uuid <uuid>] <index...>",
		Description: `Restores the selected tasks.

From the removed list, completed tasks go back to the completed list and the
rest to the pending list. From the completed list, tasks return to pending.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "list",
				Aliases:     []string{"l"},
				Usage:       "list to restore from (removed, completed)",
				Value:       string(task.Removed),
				Destination: &cmd.list,
			},
			uuidFlag(&cmd.uuids),
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *UndoCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "undo")

	l, err := task.ParseList(cmd.list)
	if err != nil {
		return err
	}

	sel, err := parseSelector(c.Args().Slice(), cmd.uuids)
	if err != nil {
		return err
	}

	moved, err := cmd.app.Tasks.Restore(ctx, l, sel)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "restored %d task(s)\n", moved)
	return nil
}
