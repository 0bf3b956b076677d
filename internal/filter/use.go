package filter

import (
	"github.com/chaisql/sift/internal/dataset"
)

// Use runs a whole dataset through f as a single batch and returns the
// filtered dataset. The input format of f is set to the schema of ds,
// which resets the filter.
func Use(f *Filter, ds *dataset.Dataset) (*dataset.Dataset, error) {
	if _, err := f.SetInputFormat(ds.Schema()); err != nil {
		return nil, err
	}

	for _, r := range ds.Rows() {
		if _, err := f.Input(r); err != nil {
			return nil, err
		}
	}

	if _, err := f.BatchFinished(); err != nil {
		return nil, err
	}

	out := dataset.New(f.OutputFormat(), f.NumPendingOutput())
	for {
		r, ok := f.Output()
		if !ok {
			break
		}
		if err := out.Add(r); err != nil {
			return nil, err
		}
	}

	return out, nil
}
