package sift

import (
	"io"
	"math/rand"

	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/filter"
	"github.com/chaisql/sift/internal/filter/dedup"
	"github.com/chaisql/sift/internal/filter/enn"
	"github.com/chaisql/sift/internal/filter/ros"
	"github.com/chaisql/sift/internal/stream"
	"go.uber.org/zap"
)

type (
	// Attribute describes one column of a dataset.
	Attribute = dataset.Attribute
	// Schema lists the attributes of a dataset and its class attribute.
	Schema = dataset.Schema
	// Row is one instance of a dataset.
	Row = dataset.Row
	// Dataset is an ordered sequence of rows sharing one schema.
	Dataset = dataset.Dataset
	// Filter runs an instance filter through the batch protocol.
	Filter = filter.Filter
	// FilterState is the lifecycle state of a Filter.
	FilterState = filter.State
	// Pipeline chains filters.
	Pipeline = stream.Stream
	// Option configures a Filter.
	Option = filter.Option
)

// Default configuration of the filters.
const (
	DefaultROSPercentage = ros.DefaultPercentage
	DefaultENNNeighbors  = enn.DefaultK
)

// NewNumericAttribute returns a numeric attribute.
func NewNumericAttribute(name string) Attribute {
	return dataset.NewNumericAttribute(name)
}

// NewNominalAttribute returns a nominal attribute with the given labels.
func NewNominalAttribute(name string, labels ...string) Attribute {
	return dataset.NewNominalAttribute(name, labels...)
}

// NewDateAttribute returns a date attribute parsed and formatted with layout.
func NewDateAttribute(name, layout string) Attribute {
	return dataset.NewDateAttribute(name, layout)
}

// NewSchema creates a schema. classIndex is the position of the class attribute.
func NewSchema(name string, classIndex int, attrs ...Attribute) (*Schema, error) {
	return dataset.NewSchema(name, classIndex, attrs...)
}

// NewDataset creates an empty dataset.
func NewDataset(s *Schema) *Dataset {
	return dataset.New(s, 0)
}

// ReadJSON reads a dataset encoded as JSON lines.
func ReadJSON(r io.Reader, s *Schema) (*Dataset, error) {
	return dataset.ReadJSON(r, s)
}

// WriteJSON writes a dataset as JSON lines.
func WriteJSON(w io.Writer, ds *Dataset) error {
	return dataset.WriteJSON(w, ds)
}

// WithLogger sets the logger a filter reports finalized batches to.
func WithLogger(logger *zap.Logger) Option {
	return filter.WithLogger(logger)
}

// NewROS creates a random oversampling filter. percentage is the target share
// of the minority class, within [1, 99]. If rnd is nil, a source seeded from
// the clock is used.
func NewROS(percentage float64, rnd *rand.Rand, opts ...Option) (*Filter, error) {
	ropts := []ros.Option{ros.WithPercentage(percentage)}
	if rnd != nil {
		ropts = append(ropts, ros.WithRand(rnd))
	}

	o, err := ros.New(ropts...)
	if err != nil {
		return nil, err
	}

	return filter.New(o, opts...), nil
}

// NewENN creates an edited nearest neighbor filter consulting k neighbors,
// within [1, 99].
func NewENN(k int, opts ...Option) (*Filter, error) {
	c, err := enn.New(enn.WithK(k))
	if err != nil {
		return nil, err
	}

	return filter.New(c, opts...), nil
}

// NewRemoveDuplicates creates a filter returning the first occurrence of each
// row, or every later occurrence if invert is true. useClass sets whether
// the class attribute is compared.
func NewRemoveDuplicates(invert, useClass bool, opts ...Option) *Filter {
	p := dedup.New(dedup.WithInvert(invert), dedup.WithIncludeClass(useClass))

	return filter.New(p, opts...)
}

// Use runs ds through f as a single batch and returns the result.
func Use(f *Filter, ds *Dataset) (*Dataset, error) {
	return filter.Use(f, ds)
}

// NewPipeline chains the given filters.
func NewPipeline(filters ...*Filter) *Pipeline {
	return stream.New(filters...)
}
