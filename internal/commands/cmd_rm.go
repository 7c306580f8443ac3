package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskjson/internal/core/logging"
	"github.com/colonyops/taskjson/internal/core/task"
	"github.com/colonyops/taskjson/internal/taskjson"
)

type RmCmd struct {
	flags *Flags
	app   *taskjson.App

	// flags
	list  string
	uuids []string
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *taskjson.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "rm",
		Usage:     "Move tasks to the removed list",
		UsageText: "taskjson rm [--list <list>] [--uuid <uuid>] <index...>",
		Description: `Moves the selected tasks of a list to the removed list. Removed tasks can be
brought back with 'taskjson undo'.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "list",
				Aliases:     []string{"l"},
				Usage:       "list to remove from (pending, completed, removed)",
				Value:       string(task.Pending),
				Destination: &cmd.list,
			},
			uuidFlag(&cmd.uuids),
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "rm")

	l, err := task.ParseList(cmd.list)
	if err != nil {
		return err
	}

	sel, err := parseSelector(c.Args().Slice(), cmd.uuids)
	if err != nil {
		return err
	}

	moved, err := cmd.app.Tasks.Remove(ctx, l, sel)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "removed %d task(s)\n", moved)
	return nil
}
