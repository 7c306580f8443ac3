package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/taskjson/internal/commands"
	"github.com/colonyops/taskjson/internal/core/config"
	"github.com/colonyops/taskjson/internal/taskjson"
	"github.com/colonyops/taskjson/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		tasksApp  = &taskjson.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "taskjson",
		Usage:     "Manage a task list stored as JSON",
		UsageText: "taskjson [global options] command [command options]",
		Description: `taskjson keeps pending, completed and removed tasks in a task.json document
(or a sqlite database) and merges copies of it from other machines.

Run 'taskjson init' to create an empty store, then 'taskjson add' to add tasks.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TASKJSON_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/taskjson.log)",
				Sources:     cli.EnvVars("TASKJSON_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TASKJSON_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TASKJSON_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "taskjson.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			a, err := taskjson.NewApp(ctx, cfg, time.Now, log.Logger)
			if err != nil {
				return ctx, err
			}

			// Commands already hold a pointer to tasksApp.
			*tasksApp = *a
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if err := tasksApp.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close store")
				return err
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewInitCmd(flags, tasksApp).Register(app)
	app = commands.NewAddCmd(flags, tasksApp).Register(app)
	app = commands.NewLsCmd(flags, tasksApp).Register(app)
	app = commands.NewDoCmd(flags, tasksApp).Register(app)
	app = commands.NewRmCmd(flags, tasksApp).Register(app)
	app = commands.NewUndoCmd(flags, tasksApp).Register(app)
	app = commands.NewMergeCmd(flags, tasksApp).Register(app)
	app = commands.NewImportCmd(flags, tasksApp).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
