package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/chaisql/sift/internal/logutil"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const loggerKey = "logger"

// NewApp creates the Sift CLI app.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "sift"
	app.Usage = "Instance filters for supervised learning datasets"
	app.EnableBashCompletion = true

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "minimum level of the logs written to stderr: debug, info, warn or error",
			Value:   "warn",
			EnvVars: []string{"SIFT_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "encoding of the logs: console or json",
			Value: logutil.FormatConsole,
		},
	}

	app.Commands = []*cli.Command{
		NewRunCommand(),
		NewROSCommand(),
		NewENNCommand(),
		NewDedupCommand(),
		NewVersionCommand(),
	}

	// inject cancelable context to all commands
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		defer cancel()

		select {
		case <-ch:
			// a second signal terminates the process
			signal.Stop(ch)
		case <-ctx.Done():
		}
	}()

	for i := range app.Commands {
		action := app.Commands[i].Action
		app.Commands[i].Action = func(c *cli.Context) error {
			c.Context = ctx
			return action(c)
		}
	}

	app.Before = func(c *cli.Context) error {
		logger, err := logutil.New(c.String("log-level"), c.String("log-format"))
		if err != nil {
			return err
		}

		if app.Metadata == nil {
			app.Metadata = make(map[string]interface{})
		}
		app.Metadata[loggerKey] = logger
		return nil
	}

	app.After = func(c *cli.Context) error {
		signal.Stop(ch)
		cancel()

		if logger, ok := app.Metadata[loggerKey].(*zap.Logger); ok {
			_ = logger.Sync()
		}
		return nil
	}

	return app
}

func loggerFrom(c *cli.Context) *zap.Logger {
	if logger, ok := c.App.Metadata[loggerKey].(*zap.Logger); ok {
		return logger
	}

	return zap.NewNop()
}
