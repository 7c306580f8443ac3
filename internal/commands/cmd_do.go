package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskjson/internal/core/logging"
	"github.com/colonyops/taskjson/internal/taskjson"
)

type DoCmd struct {
	flags *Flags
	app   *taskjson.App

	// flags
	uuids []string
}

// NewDoCmd creates a new do command
func NewDoCmd(flags *Flags, app *taskjson.App) *DoCmd {
	return &DoCmd{flags: flags, app: app}
}

// Register adds the do command to the application
func (cmd *DoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "do",
		Usage:     "Complete pending tasks",
		UsageText: "taskjson do [--uuid <uuid>] <index...>",
		Description: `Moves the selected pending tasks to the completed list.

Indexes are the positions shown by 'taskjson ls'. Indexes past the end of the
list are ignored.`,
		Flags:  []cli.Flag{uuidFlag(&cmd.uuids)},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "do")

	sel, err := parseSelector(c.Args().Slice(), cmd.uuids)
	if err != nil {
		return err
	}

	moved, err := cmd.app.Tasks.Do(ctx, sel)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "completed %d task(s)\n", moved)
	return nil
}
