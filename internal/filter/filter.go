// Package filter implements the batch filter protocol shared by every
// instance filter.
//
// Rows are fed with Input and buffered until BatchFinished is called. The
// first time a batch is finished, the filter runs its algorithm once over the
// buffered rows and queues the result, which is then retrieved one row at a
// time with Output. Every later batch is passed through unchanged.
package filter

import (
	"time"

	"github.com/chaisql/sift/internal/dataset"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// An Algorithm computes the output of a filter from the first complete batch.
// Process is called exactly once per filter instance and must not keep
// references to ds.
type Algorithm interface {
	Process(ds *dataset.Dataset) ([]dataset.Row, error)
	String() string
}

// A FormatChecker is an Algorithm that restricts the schemas it accepts.
type FormatChecker interface {
	CheckFormat(s *dataset.Schema) error
}

// State of a filter.
type State uint8

// Lifecycle: Idle -> Buffering -> Finalizing -> Draining -> Idle.
const (
	StateIdle State = iota
	StateBuffering
	StateFinalizing
	StateDraining
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuffering:
		return "buffering"
	case StateFinalizing:
		return "finalizing"
	case StateDraining:
		return "draining"
	}

	return "unknown"
}

// A Filter drives an Algorithm through the batch protocol.
// Filters are not safe for concurrent use. A new batch must not be started
// before the output of the previous one has been drained: Input discards any
// pending output when a new batch begins.
type Filter struct {
	algo   Algorithm
	logger *zap.Logger

	schema *dataset.Schema
	buffer *dataset.Dataset
	queue  []dataset.Row
	// index of the next row to return from the queue
	head int

	state          State
	newBatch       bool
	firstBatchDone bool
}

// An Option configures a Filter.
type Option func(f *Filter)

// WithLogger sets the logger used to report finalized batches.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Filter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a filter running the given algorithm.
func New(algo Algorithm, opts ...Option) *Filter {
	f := Filter{
		algo:   algo,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&f)
	}

	return &f
}

// Algorithm returns the algorithm run by the filter.
func (f *Filter) Algorithm() Algorithm {
	return f.algo
}

// SetInputFormat establishes the schema of the incoming rows and resets the
// filter: any buffered row or pending output is dropped and the next batch
// is treated as the first one.
// The output format is the same as the input format. It always returns true.
func (f *Filter) SetInputFormat(s *dataset.Schema) (bool, error) {
	if s == nil {
		return false, errors.New("input format must not be nil")
	}

	if fc, ok := f.algo.(FormatChecker); ok {
		if err := fc.CheckFormat(s); err != nil {
			return false, err
		}
	}

	f.schema = s
	f.buffer = dataset.New(s, 0)
	f.resetQueue()
	f.state = StateIdle
	f.newBatch = true
	f.firstBatchDone = false

	return true, nil
}

// InputFormat returns the schema set with SetInputFormat, or nil.
func (f *Filter) InputFormat() *dataset.Schema {
	return f.schema
}

// OutputFormat returns the schema of the rows returned by Output.
func (f *Filter) OutputFormat() *dataset.Schema {
	return f.schema
}

// Input feeds a row to the filter. It returns true if the row is immediately
// available through Output, which only happens once the first batch is done.
func (f *Filter) Input(r dataset.Row) (bool, error) {
	if f.schema == nil {
		return false, newInvalidStateError("input")
	}

	if err := f.schema.Validate(r); err != nil {
		return false, err
	}

	if f.newBatch {
		f.resetQueue()
		f.newBatch = false
	}

	if f.firstBatchDone {
		f.push(r)
		f.state = StateDraining
		return true, nil
	}

	if err := f.buffer.Add(r); err != nil {
		return false, err
	}
	f.state = StateBuffering
	return false, nil
}

// BatchFinished signals the end of a batch. On the first batch, the algorithm
// is run over every buffered row and its result is queued.
// It returns true if there are rows to collect with Output.
//
// If the algorithm fails, the buffered rows are dropped and the error is
// returned. The next batch is then treated as a first batch again.
func (f *Filter) BatchFinished() (bool, error) {
	if f.schema == nil {
		return false, newInvalidStateError("batch finished")
	}

	if !f.firstBatchDone {
		f.state = StateFinalizing

		start := time.Now()
		in := f.buffer.Len()
		rows, err := f.algo.Process(f.buffer)
		f.flushInput()
		if err != nil {
			f.newBatch = true
			f.state = StateIdle
			return false, err
		}

		for _, r := range rows {
			f.push(r)
		}

		f.logger.Debug("batch finalized",
			zap.Stringer("filter", f.algo),
			zap.Int("rows_in", in),
			zap.Int("rows_out", len(rows)),
			zap.Duration("took", time.Since(start)),
		)
	} else {
		f.flushInput()
	}

	f.newBatch = true
	f.firstBatchDone = true

	if f.NumPendingOutput() == 0 {
		f.state = StateIdle
		return false, nil
	}

	f.state = StateDraining
	return true, nil
}

// Output returns the next pending row, in the order rows were queued.
// It returns false once the queue is empty.
func (f *Filter) Output() (dataset.Row, bool) {
	if f.head >= len(f.queue) {
		return dataset.Row{}, false
	}

	r := f.queue[f.head]
	f.queue[f.head] = dataset.Row{}
	f.head++

	if f.head == len(f.queue) {
		f.resetQueue()
		if f.state == StateDraining {
			f.state = StateIdle
		}
	}

	return r, true
}

// NumPendingOutput returns the number of rows waiting to be collected.
func (f *Filter) NumPendingOutput() int {
	return len(f.queue) - f.head
}

// State returns the current state of the filter.
func (f *Filter) State() State {
	return f.state
}

// IsFirstBatchDone returns true once the algorithm has run. Every batch fed
// afterwards is passed through.
func (f *Filter) IsFirstBatchDone() bool {
	return f.firstBatchDone
}

func (f *Filter) String() string {
	return f.algo.String()
}

func (f *Filter) push(r dataset.Row) {
	f.queue = append(f.queue, r)
}

func (f *Filter) resetQueue() {
	f.queue = f.queue[:0]
	f.head = 0
}

func (f *Filter) flushInput() {
	f.buffer = dataset.New(f.schema, 0)
}
