package filter

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNoInputFormat is returned when a filter is used before its input format
// has been set.
var ErrNoInputFormat = errors.New("no input instance format defined")

// InvalidStateError is returned when an operation is invoked on a filter
// whose input format hasn't been established.
type InvalidStateError struct {
	Op string
}

func (e *InvalidStateError) Error() string {
	return e.Op + ": " + ErrNoInputFormat.Error()
}

func (e *InvalidStateError) Unwrap() error {
	return ErrNoInputFormat
}

func newInvalidStateError(op string) error {
	return errors.WithStack(&InvalidStateError{Op: op})
}

// ConfigError is returned by setters and option parsers when given an
// invalid configuration value.
type ConfigError struct {
	Option string
	Value  any
	Reason string
}

// NewConfigError returns a ConfigError annotated with a stack trace.
func NewConfigError(option string, value any, reason string) error {
	return errors.WithStack(&ConfigError{Option: option, Value: value, Reason: reason})
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Option, e.Value, e.Reason)
}

// EmptyResultError is returned when the partition requested from a
// duplicate partitioner holds no row.
type EmptyResultError struct {
	Uniques        int
	Duplicates     int
	Invert         bool
	IncludeClass   bool
	ClassAttribute string
}

func (e *EmptyResultError) Error() string {
	var sb strings.Builder

	sb.WriteString("0 instances will be returned. Additional information:")
	fmt.Fprintf(&sb, "\n\t%d: unique instances.", e.Uniques)
	fmt.Fprintf(&sb, "\n\t%d: duplicated instances.", e.Duplicates)
	fmt.Fprintf(&sb, "\n\tinvert: %t", e.Invert)
	fmt.Fprintf(&sb, "\n\tifClass: %t", e.IncludeClass)
	sb.WriteString("\n\t")
	sb.WriteString(e.ClassAttribute)

	return sb.String()
}
