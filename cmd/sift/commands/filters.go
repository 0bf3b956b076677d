package commands

import (
	"github.com/chaisql/sift/cmd/sift/siftutil"
	"github.com/chaisql/sift/internal/config"
	"github.com/chaisql/sift/internal/filter"
	"github.com/chaisql/sift/internal/filter/dedup"
	"github.com/chaisql/sift/internal/filter/enn"
	"github.com/chaisql/sift/internal/filter/ros"
	"github.com/chaisql/sift/internal/neighbor"
	"github.com/chaisql/sift/internal/stream"
	"github.com/urfave/cli/v2"
)

func newSchemaFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "schema",
		Aliases:  []string{"s"},
		Usage:    "path of a configuration file describing the attributes of the rows. Its filters are ignored.",
		Required: true,
	}
}

// runSingleFilter filters the input files of c through one filter created
// by newAlgo for each file.
func runSingleFilter(c *cli.Context, newAlgo func() (filter.Algorithm, error)) error {
	// fail early on invalid options
	if _, err := newAlgo(); err != nil {
		return err
	}

	cfg, err := config.Load(c.String("schema"))
	if err != nil {
		return err
	}

	schema, err := cfg.Schema()
	if err != nil {
		return err
	}

	logger := loggerFrom(c)
	return siftutil.Process(c.Context, &siftutil.Options{
		Schema: schema,
		Pipeline: func() (*stream.Stream, error) {
			algo, err := newAlgo()
			if err != nil {
				return nil, err
			}
			return stream.New(filter.New(algo, filter.WithLogger(logger))), nil
		},
		Inputs: c.Args().Slice(),
		OutDir: c.String("out-dir"),
		Stdin:  c.App.Reader,
		Stdout: c.App.Writer,
		Logger: logger,
	})
}

// NewROSCommand returns a cli.Command for "sift ros".
func NewROSCommand() *cli.Command {
	return &cli.Command{
		Name:      "ros",
		Usage:     "Oversample the minority class",
		UsageText: "sift ros --schema schema.toml [options] [file...]",
		Description: `The ros command duplicates random rows of the least frequent class until it
represents the given percentage of the most frequent class.

$ sift ros --schema schema.toml -p 30 --seed 1 data.jsonl`,
		Flags: []cli.Flag{
			newSchemaFlag(),
			&cli.Float64Flag{
				Name:    "percent",
				Aliases: []string{"p"},
				Usage:   "target percentage of the minority class, between 1 and 99",
				Value:   ros.DefaultPercentage,
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "seed of the random source. Defaults to the current time.",
			},
			newOutDirFlag(),
		},
		Action: func(c *cli.Context) error {
			return runSingleFilter(c, func() (filter.Algorithm, error) {
				opts := []ros.Option{ros.WithPercentage(c.Float64("percent"))}
				if c.IsSet("seed") {
					opts = append(opts, ros.WithSeed(c.Int64("seed")))
				}
				return ros.New(opts...)
			})
		},
	}
}

// NewENNCommand returns a cli.Command for "sift enn".
func NewENNCommand() *cli.Command {
	return &cli.Command{
		Name:      "enn",
		Usage:     "Remove rows outvoted by their nearest neighbors",
		UsageText: "sift enn --schema schema.toml [options] [file...]",
		Description: `The enn command removes every row whose class is not the most frequent
among its k nearest neighbors. Ties keep the row.

$ sift enn --schema schema.toml -k 5 --metric manhattan data.jsonl`,
		Flags: []cli.Flag{
			newSchemaFlag(),
			&cli.IntFlag{
				Name:    "neighbors",
				Aliases: []string{"k"},
				Usage:   "number of neighbors, between 1 and 99",
				Value:   enn.DefaultK,
			},
			&cli.StringFlag{
				Name:    "metric",
				Aliases: []string{"m"},
				Usage:   "distance metric: euclidean, manhattan or chebyshev",
				Value:   neighbor.Euclidean.String(),
			},
			newOutDirFlag(),
		},
		Action: func(c *cli.Context) error {
			return runSingleFilter(c, func() (filter.Algorithm, error) {
				m, err := neighbor.ParseMetric(c.String("metric"))
				if err != nil {
					return nil, filter.NewConfigError("metric", c.String("metric"), "unknown metric")
				}
				return enn.New(enn.WithK(c.Int("neighbors")), enn.WithMetric(m))
			})
		},
	}
}

// NewDedupCommand returns a cli.Command for "sift dedup".
func NewDedupCommand() *cli.Command {
	return &cli.Command{
		Name:      "dedup",
		Usage:     "Remove duplicate rows, or keep only them",
		UsageText: "sift dedup --schema schema.toml [options] [file...]",
		Description: `The dedup command keeps the first occurrence of each row.
With --invert, it keeps every later occurrence instead.

$ sift dedup --schema schema.toml data.jsonl
$ sift dedup --schema schema.toml --invert --no-class data.jsonl

It fails if no row would be returned.`,
		Flags: []cli.Flag{
			newSchemaFlag(),
			&cli.BoolFlag{
				Name:    "invert",
				Aliases: []string{"i"},
				Usage:   "return the duplicate rows instead of the unique ones",
			},
			&cli.BoolFlag{
				Name:  "no-class",
				Usage: "ignore the class attribute when comparing rows",
			},
			newOutDirFlag(),
		},
		Action: func(c *cli.Context) error {
			return runSingleFilter(c, func() (filter.Algorithm, error) {
				return dedup.New(
					dedup.WithInvert(c.Bool("invert")),
					dedup.WithIncludeClass(!c.Bool("no-class")),
				), nil
			})
		},
	}
}
