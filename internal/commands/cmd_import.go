package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskjson/internal/core/logging"
	"github.com/colonyops/taskjson/internal/taskjson"
	"github.com/colonyops/taskjson/pkg/iojson"
)

type ImportCmd struct {
	flags *Flags
	app   *taskjson.App

	// flags
	jsonOutput bool
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *taskjson.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Merge task files matched by glob patterns",
		UsageText: "taskjson import [--json] [pattern...]",
		Description: `Merges every task file matched by the given patterns into the store.
Patterns support ** for recursive matches. Without arguments the
import.sources patterns from the config are used.

Examples:
  taskjson import "$HOME/Sync/**/task.json"
  taskjson import backup/task.json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the import result as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "import")

	patterns := c.Args().Slice()
	if len(patterns) == 0 {
		patterns = cmd.app.Config.ImportPatterns()
	}
	if len(patterns) == 0 {
		return errors.New("no import patterns: pass patterns or set import.sources in the config")
	}

	res, err := cmd.app.Tasks.Import(ctx, patterns, cmd.app.Config.TaskFile)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLine(out, res)
	}

	if len(res.Files) == 0 {
		_, _ = fmt.Fprintln(out, "no files matched")
		return nil
	}
	for _, f := range res.Files {
		_, _ = fmt.Fprintf(out, "imported %s\n", f)
	}
	_, _ = fmt.Fprintf(out, "%d task(s) in store\n", res.Tasks)
	return nil
}
