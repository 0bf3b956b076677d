// Package enn implements edited nearest neighbor cleaning.
//
// A row is removed when another class is strictly more represented than its
// own among its k nearest neighbors. The row itself is never counted among
// its neighbors.
package enn

import (
	"strconv"

	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/filter"
	"github.com/chaisql/sift/internal/neighbor"
)

// DefaultK is the default number of neighbors consulted for each row.
const DefaultK = 3

var (
	_ filter.Algorithm     = (*Cleaner)(nil)
	_ filter.FormatChecker = (*Cleaner)(nil)
	_ filter.OptionHandler = (*Cleaner)(nil)
)

// Cleaner removes the rows whose class disagrees with the majority of their
// nearest neighbors.
type Cleaner struct {
	k      int
	metric neighbor.Metric
}

// An Option configures a Cleaner.
type Option func(c *Cleaner) error

// WithK sets the number of neighbors.
func WithK(k int) Option {
	return func(c *Cleaner) error {
		return c.SetK(k)
	}
}

// WithMetric sets the distance metric used to find neighbors.
func WithMetric(m neighbor.Metric) Option {
	return func(c *Cleaner) error {
		c.metric = m
		return nil
	}
}

// New creates a Cleaner using the euclidean distance by default.
func New(opts ...Option) (*Cleaner, error) {
	c := Cleaner{
		k:      DefaultK,
		metric: neighbor.Euclidean,
	}

	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return nil, err
		}
	}

	return &c, nil
}

// SetK sets the number of neighbors. It must be within [1, 99].
func (c *Cleaner) SetK(k int) error {
	if k < 1 || k > 99 {
		return filter.NewConfigError("k", k, "must be between 1 and 99")
	}

	c.k = k
	return nil
}

// K returns the number of neighbors.
func (c *Cleaner) K() int {
	return c.k
}

// Metric returns the distance metric.
func (c *Cleaner) Metric() neighbor.Metric {
	return c.metric
}

// CheckFormat implements the filter.FormatChecker interface.
// The class attribute must be nominal. Missing values are accepted anywhere.
func (c *Cleaner) CheckFormat(s *dataset.Schema) error {
	if s.NumClasses() == 0 {
		return filter.NewConfigError("class attribute", s.ClassAttribute().Name, "must be nominal with at least one label")
	}

	return nil
}

// Process implements the filter.Algorithm interface.
// Rows with a missing class are always kept and don't vote.
func (c *Cleaner) Process(ds *dataset.Dataset) ([]dataset.Row, error) {
	search := neighbor.NewLinearSearch(ds, c.metric)
	votes := make([]int, ds.Schema().NumClasses())

	out := make([]dataset.Row, 0, ds.Len())
	for i, r := range ds.Rows() {
		own, ok := r.ClassCode()
		if !ok {
			out = append(out, r.Clone())
			continue
		}

		nbrs, err := search.NearestTo(i, c.k)
		if err != nil {
			return nil, err
		}

		clear(votes)
		for _, n := range nbrs {
			if code, ok := n.Row.ClassCode(); ok {
				votes[code]++
			}
		}

		if outvoted(votes, own) {
			continue
		}

		out = append(out, r.Clone())
	}

	return out, nil
}

// outvoted reports whether a class other than own has strictly more votes.
func outvoted(votes []int, own int) bool {
	for code, n := range votes {
		if code != own && n > votes[own] {
			return true
		}
	}

	return false
}

// Options implements the filter.OptionHandler interface.
func (c *Cleaner) Options() []string {
	return []string{
		"-K", strconv.Itoa(c.k),
		"-M", c.metric.String(),
	}
}

// SetOptions implements the filter.OptionHandler interface.
// It accepts "-K <neighbors>" and "-M <metric>".
func (c *Cleaner) SetOptions(args []string) error {
	v, args, err := filter.GetOption("K", args)
	if err != nil {
		return err
	}
	if v != "" {
		k, err := filter.ParseIntOption("k", v)
		if err != nil {
			return err
		}
		if err := c.SetK(k); err != nil {
			return err
		}
	}

	v, args, err = filter.GetOption("M", args)
	if err != nil {
		return err
	}
	if v != "" {
		m, err := neighbor.ParseMetric(v)
		if err != nil {
			return filter.NewConfigError("metric", v, "unknown metric")
		}
		c.metric = m
	}

	return filter.CheckUnusedOptions(args)
}

func (c *Cleaner) String() string {
	return "enn(" + strconv.Itoa(c.k) + ")"
}
