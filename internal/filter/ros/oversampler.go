// Package ros implements random oversampling of the minority class.
package ros

import (
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/filter"
	"github.com/cockroachdb/errors"
)

// DefaultPercentage is the default share of the minority class, in percent,
// relative to the majority class.
const DefaultPercentage = 25

var (
	_ filter.Algorithm     = (*Oversampler)(nil)
	_ filter.FormatChecker = (*Oversampler)(nil)
	_ filter.OptionHandler = (*Oversampler)(nil)
)

// Oversampler duplicates randomly chosen rows of the least frequent class
// until it represents the requested percentage of the minority plus majority
// classes. Duplicates are interleaved randomly with the original rows.
type Oversampler struct {
	percentage float64
	rnd        *rand.Rand
	seed       int64
	// false when rnd was injected and its seed is unknown
	seeded bool
}

// An Option configures an Oversampler.
type Option func(o *Oversampler) error

// WithPercentage sets the target percentage of the minority class.
func WithPercentage(p float64) Option {
	return func(o *Oversampler) error {
		return o.SetPercentage(p)
	}
}

// WithSeed seeds the random source used to draw and interleave duplicates.
func WithSeed(seed int64) Option {
	return func(o *Oversampler) error {
		o.SetSeed(seed)
		return nil
	}
}

// WithRand sets the random source used to draw and interleave duplicates.
func WithRand(rnd *rand.Rand) Option {
	return func(o *Oversampler) error {
		if rnd == nil {
			return errors.New("random source must not be nil")
		}
		o.rnd = rnd
		o.seed, o.seeded = 0, false
		return nil
	}
}

// New creates an Oversampler. Unless a seed or a source is given, the random
// source is seeded from the clock.
func New(opts ...Option) (*Oversampler, error) {
	o := Oversampler{
		percentage: DefaultPercentage,
	}

	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	if o.rnd == nil {
		o.SetSeed(time.Now().UnixNano())
	}

	return &o, nil
}

// SetPercentage sets the target percentage of the minority class.
// It must be within [1, 99].
func (o *Oversampler) SetPercentage(p float64) error {
	if math.IsNaN(p) || p < 1 || p > 99 {
		return filter.NewConfigError("percentage", p, "must be between 1 and 99")
	}

	o.percentage = p
	return nil
}

// Percentage returns the target percentage of the minority class.
func (o *Oversampler) Percentage() float64 {
	return o.percentage
}

// SetSeed replaces the random source with one seeded with seed.
func (o *Oversampler) SetSeed(seed int64) {
	o.seed, o.seeded = seed, true
	o.rnd = rand.New(rand.NewSource(seed))
}

// Seed returns the seed of the random source. It returns false if the source
// was set with WithRand.
func (o *Oversampler) Seed() (int64, bool) {
	return o.seed, o.seeded
}

// CheckFormat implements the filter.FormatChecker interface.
// The class attribute must be nominal.
func (o *Oversampler) CheckFormat(s *dataset.Schema) error {
	if s.NumClasses() == 0 {
		return filter.NewConfigError("class attribute", s.ClassAttribute().Name, "must be nominal with at least one label")
	}

	return nil
}

// Process implements the filter.Algorithm interface.
func (o *Oversampler) Process(ds *dataset.Dataset) ([]dataset.Row, error) {
	counts := ds.ClassCounts()

	minClass, maxClass := -1, -1
	for c, n := range counts {
		if n == 0 {
			continue
		}
		if minClass == -1 || n < counts[minClass] {
			minClass = c
		}
		if maxClass == -1 || n > counts[maxClass] {
			maxClass = c
		}
	}

	var toDuplicate int
	if minClass != -1 {
		final := int(math.Floor(o.percentage * float64(counts[maxClass]) / (100 - o.percentage)))
		toDuplicate = final - counts[minClass]
	}

	if toDuplicate <= 0 {
		out := make([]dataset.Row, ds.Len())
		for i, r := range ds.Rows() {
			out[i] = r.Clone()
		}
		return out, nil
	}

	var minority []int
	for i, r := range ds.Rows() {
		if c, ok := r.ClassCode(); ok && c == minClass {
			minority = append(minority, i)
		}
	}

	sources := make([]int, toDuplicate)
	for i := range sources {
		sources[i] = minority[o.rnd.Intn(len(minority))]
	}

	return o.interleave(ds, sources), nil
}

// interleave merges the original rows with clones of the rows at the given
// indexes, choosing at random which queue the next row is taken from.
// Both queues keep their order.
func (o *Oversampler) interleave(ds *dataset.Dataset, sources []int) []dataset.Row {
	out := make([]dataset.Row, 0, ds.Len()+len(sources))

	var i, j int
	for i < ds.Len() || j < len(sources) {
		switch {
		case j == len(sources):
			out = append(out, ds.Row(i).Clone())
			i++
		case i == ds.Len():
			out = append(out, ds.Row(sources[j]).Clone())
			j++
		case o.rnd.Intn(2) == 0:
			out = append(out, ds.Row(i).Clone())
			i++
		default:
			out = append(out, ds.Row(sources[j]).Clone())
			j++
		}
	}

	return out
}

// Options implements the filter.OptionHandler interface.
// The seed is only listed if it is known.
func (o *Oversampler) Options() []string {
	opts := []string{"-P", strconv.FormatFloat(o.percentage, 'f', -1, 64)}
	if o.seeded {
		opts = append(opts, "-S", strconv.FormatInt(o.seed, 10))
	}

	return opts
}

// SetOptions implements the filter.OptionHandler interface.
// It accepts "-P <percentage>" and "-S <seed>".
func (o *Oversampler) SetOptions(args []string) error {
	v, args, err := filter.GetOption("P", args)
	if err != nil {
		return err
	}
	if v != "" {
		p, err := filter.ParseFloatOption("percentage", v)
		if err != nil {
			return err
		}
		if err := o.SetPercentage(p); err != nil {
			return err
		}
	}

	v, args, err = filter.GetOption("S", args)
	if err != nil {
		return err
	}
	if v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter.NewConfigError("seed", v, "not an integer")
		}
		o.SetSeed(seed)
	}

	return filter.CheckUnusedOptions(args)
}

func (o *Oversampler) String() string {
	return "ros(" + strconv.FormatFloat(o.percentage, 'f', -1, 64) + ")"
}
