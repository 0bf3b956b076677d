package commands

import (
	"github.com/chaisql/sift/cmd/sift/siftutil"
	"github.com/chaisql/sift/internal/config"
	"github.com/chaisql/sift/internal/stream"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

func newOutDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "out-dir",
		Aliases: []string{"o"},
		Usage:   "directory to write one result file per input to. Defaults to STDOUT.",
	}
}

// NewRunCommand returns a cli.Command for "sift run".
func NewRunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run the filter pipeline described by a configuration file",
		UsageText: "sift run --config pipeline.toml [options] [file...]",
		Description: `The run command reads the schema and the filters to apply from a TOML file,
then filters each file given as argument. Files contain one row per line,
either as a JSON array or a JSON object.

$ sift run --config pipeline.toml data.jsonl

Multiple files are filtered concurrently, each through its own pipeline:

$ sift run --config pipeline.toml -o out/ a.jsonl b.jsonl

Without file, rows are read from standard input:

$ cat data.jsonl | sift run --config pipeline.toml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "path of the configuration file",
				Required: true,
			},
			newOutDirFlag(),
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if len(cfg.Filters) == 0 {
				return errors.Errorf("no filter defined in %q", c.String("config"))
			}

			schema, err := cfg.Schema()
			if err != nil {
				return err
			}

			logger := loggerFrom(c)
			return siftutil.Process(c.Context, &siftutil.Options{
				Schema: schema,
				Pipeline: func() (*stream.Stream, error) {
					return cfg.Pipeline(logger)
				},
				Inputs: c.Args().Slice(),
				OutDir: c.String("out-dir"),
				Stdin:  c.App.Reader,
				Stdout: c.App.Writer,
				Logger: logger,
			})
		},
	}
}
