package sift

import (
	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/filter"
)

var (
	// ErrNoInputFormat is returned when a filter is used before its input
	// format is set.
	ErrNoInputFormat = filter.ErrNoInputFormat

	// ErrSchemaMismatch is returned when a row doesn't conform to a schema.
	ErrSchemaMismatch = dataset.ErrSchemaMismatch

	// ErrUnknownLabel is returned when a nominal value has no matching label.
	ErrUnknownLabel = dataset.ErrUnknownLabel
)

type (
	// InvalidStateError is returned when an operation requires an input format
	// that wasn't set.
	InvalidStateError = filter.InvalidStateError

	// ConfigError is returned when a filter is given an invalid configuration.
	ConfigError = filter.ConfigError

	// EmptyResultError is returned when the rows selected by RemoveDuplicates
	// are empty.
	EmptyResultError = filter.EmptyResultError
)
