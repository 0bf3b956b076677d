// Package dedup separates the first occurrence of each row from its
// duplicates.
package dedup

import (
	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/filter"
	"github.com/cockroachdb/errors"
)

var (
	_ filter.Algorithm     = (*Partitioner)(nil)
	_ filter.OptionHandler = (*Partitioner)(nil)
)

// Partitioner splits a dataset into unique rows, the first occurrence of
// each distinct row, and duplicate rows, every later occurrence.
// It returns the unique rows, or the duplicates when inverted. Both
// partitions keep the order of the input.
type Partitioner struct {
	invert       bool
	includeClass bool
}

// An Option configures a Partitioner.
type Option func(p *Partitioner)

// WithInvert returns the duplicate rows instead of the unique ones.
func WithInvert(invert bool) Option {
	return func(p *Partitioner) {
		p.invert = invert
	}
}

// WithIncludeClass sets whether the class attribute takes part in the
// comparison of rows.
func WithIncludeClass(include bool) Option {
	return func(p *Partitioner) {
		p.includeClass = include
	}
}

// New creates a Partitioner returning unique rows and comparing every
// attribute, class included.
func New(opts ...Option) *Partitioner {
	p := Partitioner{
		includeClass: true,
	}

	for _, opt := range opts {
		opt(&p)
	}

	return &p
}

// Invert reports whether the duplicate rows are returned.
func (p *Partitioner) Invert() bool {
	return p.invert
}

// SetInvert sets whether the duplicate rows are returned.
func (p *Partitioner) SetInvert(invert bool) {
	p.invert = invert
}

// IncludeClass reports whether the class attribute is compared.
func (p *Partitioner) IncludeClass() bool {
	return p.includeClass
}

// SetIncludeClass sets whether the class attribute is compared.
func (p *Partitioner) SetIncludeClass(include bool) {
	p.includeClass = include
}

// Partition returns the unique and duplicate rows of ds.
func (p *Partitioner) Partition(ds *dataset.Dataset) (uniques, duplicates []dataset.Row) {
	set := NewSet(NewRelation(ds.Schema(), p.includeClass))

	for _, r := range ds.Rows() {
		if set.Add(r) {
			uniques = append(uniques, r)
		} else {
			duplicates = append(duplicates, r)
		}
	}

	return uniques, duplicates
}

// Process implements the filter.Algorithm interface.
// It returns an *filter.EmptyResultError if the selected partition is empty.
func (p *Partitioner) Process(ds *dataset.Dataset) ([]dataset.Row, error) {
	uniques, duplicates := p.Partition(ds)

	selected := uniques
	if p.invert {
		selected = duplicates
	}

	if len(selected) == 0 {
		return nil, errors.WithStack(&filter.EmptyResultError{
			Uniques:        len(uniques),
			Duplicates:     len(duplicates),
			Invert:         p.invert,
			IncludeClass:   p.includeClass,
			ClassAttribute: ds.Schema().ClassAttribute().String(),
		})
	}

	out := make([]dataset.Row, len(selected))
	for i, r := range selected {
		out[i] = r.Clone()
	}

	return out, nil
}

// Options implements the filter.OptionHandler interface.
func (p *Partitioner) Options() []string {
	var opts []string
	if p.invert {
		opts = append(opts, "-I")
	}
	if p.includeClass {
		opts = append(opts, "-C")
	}

	return opts
}

// SetOptions implements the filter.OptionHandler interface.
// Each flag is set according to its presence: "-I" inverts the output and
// "-C" includes the class attribute in the comparison.
func (p *Partitioner) SetOptions(args []string) error {
	p.invert, args = filter.GetFlag("I", args)
	p.includeClass, args = filter.GetFlag("C", args)

	return filter.CheckUnusedOptions(args)
}

func (p *Partitioner) String() string {
	name := "dedup(unique"
	if p.invert {
		name = "dedup(duplicates"
	}
	if !p.includeClass {
		name += ", no class"
	}

	return name + ")"
}
