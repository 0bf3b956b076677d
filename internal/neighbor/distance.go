package neighbor

import (
	"math"
	"strings"

	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/types"
	"github.com/cockroachdb/errors"
)

// Metric combines per-attribute differences into a distance.
type Metric uint8

// List of supported metrics.
const (
	Euclidean Metric = iota
	Manhattan
	Chebyshev
)

// ParseMetric returns the metric with the given name.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(s) {
	case "", "euclidean", "l2":
		return Euclidean, nil
	case "manhattan", "l1":
		return Manhattan, nil
	case "chebyshev", "linf":
		return Chebyshev, nil
	}

	return 0, errors.Errorf("unknown distance metric %q", s)
}

func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	case Chebyshev:
		return "chebyshev"
	}

	return "unknown"
}

// Distance measures how far apart two rows of a dataset are.
// The class attribute is ignored.
//
// Numeric and date attributes are normalized to [0, 1] using the range of
// the dataset the Distance was built from; attributes whose range is empty
// contribute nothing. Nominal attributes differ by 0 or 1.
//
// Missing values: a nominal difference involving a missing value is 1.
// For numeric attributes, two missing values differ by 1, and a missing value
// differs from a present value v by max(norm(v), 1-norm(v)).
type Distance struct {
	schema *dataset.Schema
	ranges []dataset.Range
	metric Metric
}

// NewDistance creates a Distance normalized over ds.
func NewDistance(ds *dataset.Dataset, m Metric) *Distance {
	return &Distance{
		schema: ds.Schema(),
		ranges: ds.Ranges(),
		metric: m,
	}
}

// Metric returns the metric used to combine differences.
func (d *Distance) Metric() Metric {
	return d.metric
}

// Between returns the distance between a and b.
func (d *Distance) Between(a, b dataset.Row) float64 {
	var acc float64

	for i := 0; i < d.schema.NumAttributes(); i++ {
		if i == d.schema.ClassIndex() {
			continue
		}

		diff := d.difference(i, a.Value(i), b.Value(i))
		switch d.metric {
		case Manhattan:
			acc += math.Abs(diff)
		case Chebyshev:
			acc = math.Max(acc, math.Abs(diff))
		default:
			acc += diff * diff
		}
	}

	if d.metric == Euclidean {
		return math.Sqrt(acc)
	}
	return acc
}

func (d *Distance) difference(i int, a, b types.Value) float64 {
	am, bm := types.IsMissing(a), types.IsMissing(b)

	if d.schema.Attribute(i).IsNominal() {
		if am || bm || types.AsCode(a) != types.AsCode(b) {
			return 1
		}
		return 0
	}

	switch {
	case am && bm:
		return 1
	case am || bm:
		var v float64
		if am {
			v = d.norm(i, types.AsFloat64(b))
		} else {
			v = d.norm(i, types.AsFloat64(a))
		}
		if v < 0.5 {
			v = 1 - v
		}
		return v
	}

	return d.norm(i, types.AsFloat64(a)) - d.norm(i, types.AsFloat64(b))
}

func (d *Distance) norm(i int, v float64) float64 {
	rg := d.ranges[i]
	if !rg.Valid || rg.Width() == 0 {
		return 0
	}

	return (v - rg.Min) / rg.Width()
}
