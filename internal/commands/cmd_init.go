package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskjson/internal/core/logging"
	"github.com/colonyops/taskjson/internal/taskjson"
)

type InitCmd struct {
	flags *Flags
	app   *taskjson.App
}

// NewInitCmd creates a new init command
func NewInitCmd(flags *Flags, app *taskjson.App) *InitCmd {
	return &InitCmd{flags: flags, app: app}
}

// Register adds the init command to the application
func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "init",
		Usage:       "Create an empty task store",
		UsageText:   "taskjson init",
		Description: "Writes an empty collection to the configured store. Existing tasks are never overwritten.",
		Action:      cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "init")

	wrote, err := cmd.app.Tasks.Init(ctx)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if !wrote {
		_, _ = fmt.Fprintln(out, "task store already contains tasks, nothing to do")
		return nil
	}

	_, _ = fmt.Fprintf(out, "initialized %s store in %s\n", cmd.app.Config.Storage.Backend, cmd.flags.DataDir)
	return nil
}
