// Package siftutil runs filter pipelines over JSON lines files.
package siftutil

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/stream"
	"github.com/cockroachdb/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// A PipelineFunc returns a new pipeline. It is called once per input so that
// no filter is shared between inputs.
type PipelineFunc func() (*stream.Stream, error)

// Options of Process.
type Options struct {
	Schema   *dataset.Schema
	Pipeline PipelineFunc

	// Inputs are the paths of the files to filter. If empty, Stdin is read.
	Inputs []string
	// OutDir is the directory results are written to, one file per input
	// named after it. If empty, results are written to Stdout in the order
	// of Inputs.
	OutDir string

	Stdin  io.Reader
	Stdout io.Writer
	Logger *zap.Logger
}

// Process filters every input and writes the results.
// Inputs are processed concurrently. Once ctx is done, inputs being read are
// closed and Process returns the context error without writing anything.
func Process(ctx context.Context, opts *Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(opts.Inputs) == 0 {
		if !CanReadFrom(opts.Stdin) {
			return errors.New("no input file given and nothing to read from standard input")
		}

		out, err := run(ctx, opts, opts.Stdin, "stdin", logger)
		if err != nil {
			return err
		}
		if opts.OutDir != "" {
			return writeFile(filepath.Join(opts.OutDir, "stdin.jsonl"), out)
		}
		return dataset.WriteJSON(opts.Stdout, out)
	}

	if opts.OutDir != "" {
		seen := make(map[string]string, len(opts.Inputs))
		for _, path := range opts.Inputs {
			base := filepath.Base(path)
			if other, ok := seen[base]; ok {
				return errors.Errorf("inputs %q and %q would be written to the same file", other, path)
			}
			seen[base] = path
		}
	}

	results := make([]*dataset.Dataset, len(opts.Inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range opts.Inputs {
		i, path := i, path

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out, err := runFile(ctx, opts, path, logger)
			if err != nil {
				return err
			}

			if opts.OutDir != "" {
				return writeFile(filepath.Join(opts.OutDir, filepath.Base(path)), out)
			}

			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if opts.OutDir != "" {
		return nil
	}

	for _, out := range results {
		if err := dataset.WriteJSON(opts.Stdout, out); err != nil {
			return err
		}
	}

	return nil
}

func runFile(ctx context.Context, opts *Options, path string, logger *zap.Logger) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	return run(ctx, opts, f, path, logger)
}

func run(ctx context.Context, opts *Options, r io.Reader, name string, logger *zap.Logger) (*dataset.Dataset, error) {
	start := time.Now()

	ds, err := read(ctx, r, opts.Schema)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", name)
	}

	p, err := opts.Pipeline()
	if err != nil {
		return nil, err
	}

	out, err := p.Run(ctx, ds)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to filter %s", name)
	}

	logger.Info("input filtered",
		zap.String("input", name),
		zap.Stringer("pipeline", p),
		zap.Int("rows_in", ds.Len()),
		zap.Int("rows_out", out.Len()),
		zap.Duration("took", time.Since(start)),
	)

	return out, nil
}

// read decodes r until EOF or until ctx is done. Readers that can be closed
// are closed when ctx is done, which unblocks pending reads on pipes.
func read(ctx context.Context, r io.Reader, schema *dataset.Schema) (*dataset.Dataset, error) {
	if c, ok := r.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() {
			_ = c.Close()
		})
		defer stop()
	}

	ds, err := dataset.ReadJSONContext(ctx, r, schema)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.WithStack(ctxErr)
	}

	return ds, err
}

func writeFile(path string, ds *dataset.Dataset) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	return dataset.WriteJSON(f, ds)
}

// CanReadFrom returns whether r can be read from without blocking on a
// terminal. Readers other than files are always readable.
func CanReadFrom(r io.Reader) bool {
	if r == nil {
		return false
	}

	f, ok := r.(*os.File)
	if !ok {
		return true
	}

	fi, err := f.Stat()
	if err != nil {
		return false
	}

	return fi.Mode()&os.ModeCharDevice == 0
}
