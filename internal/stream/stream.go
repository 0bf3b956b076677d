// Package stream chains filters into a pipeline.
//
// Each stage runs over the complete output of the previous one: a stage is
// fully drained before the next stage starts buffering.
package stream

import (
	"context"
	"strings"

	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/filter"
	"github.com/cockroachdb/errors"
)

// ErrStreamClosed is used to indicate that a stream must be closed.
var ErrStreamClosed = errors.New("stream closed")

// A Stage is a filter linked to its neighbors in a stream.
type Stage struct {
	Filter *filter.Filter

	Prev *Stage
	Next *Stage
}

func (st *Stage) String() string {
	return st.Filter.String()
}

// A Stream is a sequence of stages. Op is the last stage.
type Stream struct {
	Op *Stage
}

// New creates a stream running the given filters in order.
func New(filters ...*filter.Filter) *Stream {
	var s Stream
	for _, f := range filters {
		s.Pipe(f)
	}

	return &s
}

// Pipe appends f at the end of the stream.
func (s *Stream) Pipe(f *filter.Filter) *Stream {
	st := Stage{Filter: f}
	if s.Op != nil {
		st.Prev = s.Op
		s.Op.Next = &st
	}
	s.Op = &st

	return s
}

// Remove unlinks st from the stream.
func (s *Stream) Remove(st *Stage) {
	if st == nil {
		return
	}

	if st.Prev != nil {
		st.Prev.Next = st.Next
	}
	if st.Next != nil {
		st.Next.Prev = st.Prev
	}

	if st == s.Op {
		s.Op = st.Prev
	}

	st.Next = nil
	st.Prev = nil
}

// First returns the first stage of the stream, or nil.
func (s *Stream) First() *Stage {
	st := s.Op

	for st != nil && st.Prev != nil {
		st = st.Prev
	}

	return st
}

// Len returns the number of stages.
func (s *Stream) Len() int {
	var n int
	for st := s.First(); st != nil; st = st.Next {
		n++
	}

	return n
}

// Run feeds ds to the first stage as a single batch, then the output of each
// stage to the next one. It returns the output of the last stage.
// An empty stream returns ds.
// The context is checked before each stage: once it is done, Run returns
// its error.
func (s *Stream) Run(ctx context.Context, ds *dataset.Dataset) (*dataset.Dataset, error) {
	var i int
	for st := s.First(); st != nil; st = st.Next {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}

		out, err := filter.Use(st.Filter, ds)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %d (%s)", i, st)
		}

		ds = out
		i++
	}

	return ds, nil
}

// Iterate runs the stream over ds and calls fn for each row of the result.
// If fn returns ErrStreamClosed, the iteration stops and Iterate returns nil.
func (s *Stream) Iterate(ctx context.Context, ds *dataset.Dataset, fn func(r dataset.Row) error) error {
	out, err := s.Run(ctx, ds)
	if err != nil {
		return err
	}

	for _, r := range out.Rows() {
		err := fn(r)
		if errors.Is(err, ErrStreamClosed) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *Stream) String() string {
	var sb strings.Builder

	for st := s.First(); st != nil; st = st.Next {
		if sb.Len() != 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(st.String())
	}

	return sb.String()
}
