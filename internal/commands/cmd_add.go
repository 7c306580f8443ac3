package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskjson/internal/core/logging"
	"github.com/colonyops/taskjson/internal/taskjson"
	"github.com/colonyops/taskjson/pkg/iojson"
)

type AddCmd struct {
	flags *Flags
	app   *taskjson.App

	// flags
	fields     []string
	jsonOutput bool
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *taskjson.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a pending task",
		UsageText: "taskjson add [--field key=value] <text...>",
		Description: `Creates a pending task with a new uuid. All arguments are joined into the task text.

Extra fields are stored on the task as-is. Values that parse as JSON keep their
type, anything else is stored as a string.

Examples:
  taskjson add buy milk
  taskjson add --field priority=H --field 'projects=["home"]' fix the sink`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "field",
				Aliases:     []string{"F"},
				Usage:       "extra task field as key=value (repeatable)",
				Destination: &cmd.fields,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the created task as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "add")

	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return errors.New("task text is required")
	}

	fields, err := parseFields(cmd.fields)
	if err != nil {
		return err
	}

	added, err := cmd.app.Tasks.Add(ctx, text, fields)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLine(out, added)
	}

	_, _ = fmt.Fprintf(out, "added %s\n", added.UUID)
	return nil
}

// parseFields turns key=value pairs into task fields.
func parseFields(pairs []string) (map[string]any, error) {
	fields := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q: expected key=value", pair)
		}

		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		fields[key] = v
	}
	return fields, nil
}
