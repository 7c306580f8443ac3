package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskjson/internal/core/logging"
	"github.com/colonyops/taskjson/internal/core/task"
	"github.com/colonyops/taskjson/internal/taskjson"
	"github.com/colonyops/taskjson/pkg/iojson"
)

type MergeCmd struct {
	flags *Flags
	app   *taskjson.App

	input iojson.FileReader[task.Collection]
}

// NewMergeCmd creates a new merge command
func NewMergeCmd(flags *Flags, app *taskjson.App) *MergeCmd {
	return &MergeCmd{flags: flags, app: app}
}

// Register adds the merge command to the application
func (cmd *MergeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "merge",
		Usage:     "Merge a collection into the store",
		UsageText: "taskjson merge [-f <file>]",
		Description: `Merges a task collection document into the store. For each uuid the record
with the latest modified time wins, along with its list.

Examples:
  taskjson merge -f phone/task.json
  ssh laptop cat .local/share/taskjson/task.json | taskjson merge`,
		Flags:  []cli.Flag{cmd.input.Flag()},
		Action: cmd.run,
	})
	return app
}

func (cmd *MergeCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "merge")

	other, err := cmd.input.Read()
	if err != nil {
		return err
	}
	if err := other.Validate(); err != nil {
		return fmt.Errorf("invalid input collection: %w", err)
	}

	merged, err := cmd.app.Tasks.Merge(ctx, other)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "merged: %d pending, %d completed, %d removed\n",
		len(merged.Pending), len(merged.Completed), len(merged.Removed))
	return nil
}
