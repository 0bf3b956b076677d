package filter_test

import (
	"testing"

	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/filter"
	"github.com/chaisql/sift/internal/testutil"
	"github.com/chaisql/sift/internal/testutil/assert"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// reverseAlgo outputs the batch in reverse order and counts its runs.
type reverseAlgo struct {
	calls int
	err   error
}

func (a *reverseAlgo) Process(ds *dataset.Dataset) ([]dataset.Row, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}

	out := make([]dataset.Row, 0, ds.Len())
	for i := ds.Len() - 1; i >= 0; i-- {
		out = append(out, ds.Row(i).Clone())
	}
	return out, nil
}

func (a *reverseAlgo) String() string { return "reverse" }

type rejectAlgo struct{ reverseAlgo }

func (rejectAlgo) CheckFormat(s *dataset.Schema) error {
	return filter.NewConfigError("schema", s.Name, "rejected")
}

func drain(f *filter.Filter) []dataset.Row {
	var rows []dataset.Row
	for {
		r, ok := f.Output()
		if !ok {
			return rows
		}
		rows = append(rows, r)
	}
}

func TestFilterWithoutInputFormat(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A")
	f := filter.New(new(reverseAlgo))

	_, err := f.Input(testutil.MakeRow(t, s, `[1, 1, "A"]`))
	assert.ErrorIs(t, err, filter.ErrNoInputFormat)
	var ise *filter.InvalidStateError
	assert.ErrorAs(t, err, &ise)
	require.Equal(t, "input", ise.Op)

	_, err = f.BatchFinished()
	assert.ErrorIs(t, err, filter.ErrNoInputFormat)
	assert.ErrorAs(t, err, &ise)

	_, err = f.SetInputFormat(nil)
	assert.Error(t, err)
}

func TestFilterFirstBatch(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A", "B")
	algo := new(reverseAlgo)
	f := filter.New(algo)

	ok, err := f.SetInputFormat(s)
	assert.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, filter.StateIdle, f.State())
	require.Equal(t, s, f.OutputFormat())

	rows := testutil.MakeRows(t, s, `[1, 1, "A"]`, `[2, 2, "B"]`, `[3, 3, "A"]`)
	for _, r := range rows {
		ready, err := f.Input(r)
		assert.NoError(t, err)
		require.False(t, ready)
		require.Equal(t, filter.StateBuffering, f.State())
	}
	require.Zero(t, f.NumPendingOutput())

	hasOutput, err := f.BatchFinished()
	assert.NoError(t, err)
	require.True(t, hasOutput)
	require.True(t, f.IsFirstBatchDone())
	require.Equal(t, filter.StateDraining, f.State())
	require.Equal(t, 3, f.NumPendingOutput())
	require.Equal(t, 1, algo.calls)

	testutil.RequireRowsEqual(t, []dataset.Row{rows[2], rows[1], rows[0]}, drain(f))
	require.Equal(t, filter.StateIdle, f.State())
	require.Zero(t, f.NumPendingOutput())

	// finishing again without input is safe and reports nothing
	hasOutput, err = f.BatchFinished()
	assert.NoError(t, err)
	require.False(t, hasOutput)
	require.Equal(t, 1, algo.calls)
}

func TestFilterPassThrough(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A", "B")
	algo := new(reverseAlgo)
	f := filter.New(algo)
	_, err := f.SetInputFormat(s)
	assert.NoError(t, err)

	_, err = f.Input(testutil.MakeRow(t, s, `[0, 0, "A"]`))
	assert.NoError(t, err)
	_, err = f.BatchFinished()
	assert.NoError(t, err)
	drain(f)

	rows := testutil.MakeRows(t, s, `[1, 1, "A"]`, `[2, 2, "B"]`, `[3, 3, "B"]`)
	for _, r := range rows {
		ready, err := f.Input(r)
		assert.NoError(t, err)
		require.True(t, ready)
		require.Equal(t, filter.StateDraining, f.State())
	}

	hasOutput, err := f.BatchFinished()
	assert.NoError(t, err)
	require.True(t, hasOutput)
	testutil.RequireRowsEqual(t, rows, drain(f))
	require.Equal(t, 1, algo.calls)
}

func TestFilterNewBatchDropsStaleOutput(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A")
	f := filter.New(new(reverseAlgo))
	_, err := f.SetInputFormat(s)
	assert.NoError(t, err)

	_, err = f.Input(testutil.MakeRow(t, s, `[0, 0, "A"]`))
	assert.NoError(t, err)
	_, err = f.BatchFinished()
	assert.NoError(t, err)
	require.Equal(t, 1, f.NumPendingOutput())

	// the first batch output was never collected
	r := testutil.MakeRow(t, s, `[1, 1, "A"]`)
	_, err = f.Input(r)
	assert.NoError(t, err)
	testutil.RequireRowsEqual(t, []dataset.Row{r}, drain(f))
}

func TestFilterSetInputFormatResets(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A")
	algo := new(reverseAlgo)
	f := filter.New(algo)

	for i := 0; i < 2; i++ {
		_, err := f.SetInputFormat(s)
		assert.NoError(t, err)
		require.False(t, f.IsFirstBatchDone())

		_, err = f.Input(testutil.MakeRow(t, s, `[0, 0, "A"]`))
		assert.NoError(t, err)
		_, err = f.BatchFinished()
		assert.NoError(t, err)
	}

	require.Equal(t, 2, algo.calls)
}

func TestFilterAlgorithmError(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A")
	algo := &reverseAlgo{err: errors.New("boom")}
	f := filter.New(algo)
	_, err := f.SetInputFormat(s)
	assert.NoError(t, err)

	_, err = f.Input(testutil.MakeRow(t, s, `[0, 0, "A"]`))
	assert.NoError(t, err)
	hasOutput, err := f.BatchFinished()
	require.EqualError(t, err, "boom")
	require.False(t, hasOutput)
	require.False(t, f.IsFirstBatchDone())
	require.Equal(t, filter.StateIdle, f.State())

	algo.err = nil
	r := testutil.MakeRow(t, s, `[1, 1, "A"]`)
	ready, err := f.Input(r)
	assert.NoError(t, err)
	require.False(t, ready)
	_, err = f.BatchFinished()
	assert.NoError(t, err)
	testutil.RequireRowsEqual(t, []dataset.Row{r}, drain(f))
}

func TestFilterRejectsMismatchingRows(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A")
	other := testutil.MakeSchema(t, 0, dataset.NewNominalAttribute("class", "A"))

	f := filter.New(new(reverseAlgo))
	_, err := f.SetInputFormat(s)
	assert.NoError(t, err)

	_, err = f.Input(testutil.MakeRow(t, other, `["A"]`))
	assert.ErrorIs(t, err, dataset.ErrSchemaMismatch)
}

func TestFilterFormatChecker(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A")
	f := filter.New(new(rejectAlgo))

	ok, err := f.SetInputFormat(s)
	require.False(t, ok)
	var ce *filter.ConfigError
	assert.ErrorAs(t, err, &ce)
	require.Nil(t, f.InputFormat())
}

func TestFilterLogsFinalizedBatch(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := testutil.MakeXYSchema(t, "A")
	f := filter.New(new(reverseAlgo), filter.WithLogger(zap.New(core)))

	ds := testutil.MakeDataset(t, s, `[0, 0, "A"]`, `[1, 1, "A"]`)
	_, err := filter.Use(f, ds)
	assert.NoError(t, err)

	entries := logs.FilterMessage("batch finalized").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "reverse", fields["filter"])
	require.EqualValues(t, 2, fields["rows_in"])
	require.EqualValues(t, 2, fields["rows_out"])
}

func TestUse(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A", "B")
	ds := testutil.MakeDataset(t, s, `[1, 1, "A"]`, `[2, 2, "B"]`)

	out, err := filter.Use(filter.New(new(reverseAlgo)), ds)
	assert.NoError(t, err)
	require.Equal(t, s, out.Schema())
	testutil.RequireRowsEqual(t, []dataset.Row{ds.Row(1), ds.Row(0)}, out.Rows())

	_, err = filter.Use(filter.New(&reverseAlgo{err: errors.New("boom")}), ds)
	require.EqualError(t, err, "boom")
}

func TestGetOption(t *testing.T) {
	v, rest, err := filter.GetOption("P", []string{"-I", "-P", "30", "-C"})
	assert.NoError(t, err)
	require.Equal(t, "30", v)
	require.Equal(t, []string{"-I", "-C"}, rest)

	v, rest, err = filter.GetOption("K", []string{"-I"})
	assert.NoError(t, err)
	require.Empty(t, v)
	require.Equal(t, []string{"-I"}, rest)

	_, _, err = filter.GetOption("K", []string{"-K"})
	assert.Error(t, err)

	ok, rest := filter.GetFlag("I", []string{"-I", "-C"})
	require.True(t, ok)
	require.Equal(t, []string{"-C"}, rest)

	ok, _ = filter.GetFlag("X", rest)
	require.False(t, ok)

	assert.NoError(t, filter.CheckUnusedOptions([]string{"", ""}))
	assert.Error(t, filter.CheckUnusedOptions([]string{"-Z"}))
}

func TestConfigErrors(t *testing.T) {
	_, err := filter.ParseFloatOption("percentage", "abc")
	var ce *filter.ConfigError
	assert.ErrorAs(t, err, &ce)
	require.Equal(t, "percentage", ce.Option)
	require.Equal(t, "invalid percentage abc: not a number", ce.Error())

	n, err := filter.ParseIntOption("k", "7")
	assert.NoError(t, err)
	require.Equal(t, 7, n)
}
