package testutil

import (
	"testing"

	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/types"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// MakeSchema creates a schema or fails the test.
func MakeSchema(t testing.TB, classIndex int, attrs ...dataset.Attribute) *dataset.Schema {
	t.Helper()

	s, err := dataset.NewSchema("test", classIndex, attrs...)
	require.NoError(t, err)
	return s
}

// MakeXYSchema creates a schema with two numeric attributes, x and y,
// followed by a nominal class attribute with the given labels.
func MakeXYSchema(t testing.TB, labels ...string) *dataset.Schema {
	t.Helper()

	return MakeSchema(t, 2,
		dataset.NewNumericAttribute("x"),
		dataset.NewNumericAttribute("y"),
		dataset.NewNominalAttribute("class", labels...),
	)
}

// MakeRow parses a JSON array or object into a row of s.
func MakeRow(t testing.TB, s *dataset.Schema, data string) dataset.Row {
	t.Helper()

	r, err := s.DecodeJSONRow([]byte(data))
	require.NoError(t, err)
	return r
}

// MakeRows parses every JSON value into a row of s.
func MakeRows(t testing.TB, s *dataset.Schema, data ...string) []dataset.Row {
	t.Helper()

	rows := make([]dataset.Row, 0, len(data))
	for _, d := range data {
		rows = append(rows, MakeRow(t, s, d))
	}
	return rows
}

// MakeDataset creates a dataset out of JSON rows.
func MakeDataset(t testing.TB, s *dataset.Schema, data ...string) *dataset.Dataset {
	t.Helper()

	ds := dataset.New(s, len(data))
	for _, d := range data {
		require.NoError(t, ds.Add(MakeRow(t, s, d)))
	}
	return ds
}

// MakeDatasetFromRows creates a dataset out of existing rows.
func MakeDatasetFromRows(t testing.TB, s *dataset.Schema, rows []dataset.Row) *dataset.Dataset {
	t.Helper()

	ds := dataset.New(s, len(rows))
	for _, r := range rows {
		require.NoError(t, ds.Add(r))
	}
	return ds
}

var rowValues = cmp.Transformer("Values", func(r dataset.Row) []types.Value {
	return r.Values()
})

// RequireRowsEqual compares both lists of rows in order.
func RequireRowsEqual(t testing.TB, want, got []dataset.Row) {
	t.Helper()

	if diff := cmp.Diff(want, got, rowValues, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

// CountClass returns the number of rows whose class code is code.
func CountClass(rows []dataset.Row, code int) int {
	var n int
	for _, r := range rows {
		if c, ok := r.ClassCode(); ok && c == code {
			n++
		}
	}
	return n
}
