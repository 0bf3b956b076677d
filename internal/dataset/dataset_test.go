package dataset_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/testutil"
	"github.com/chaisql/sift/internal/testutil/assert"
	"github.com/chaisql/sift/internal/types"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	x := dataset.NewNumericAttribute("x")
	c := dataset.NewNominalAttribute("class", "A", "B")

	tests := []struct {
		name       string
		classIndex int
		attrs      []dataset.Attribute
		fails      bool
	}{
		{"ok", 1, []dataset.Attribute{x, c}, false},
		{"no attributes", 0, nil, true},
		{"class out of range", 2, []dataset.Attribute{x, c}, true},
		{"negative class", -1, []dataset.Attribute{x, c}, true},
		{"duplicate name", 1, []dataset.Attribute{c, c}, true},
		{"nominal without labels", 1, []dataset.Attribute{x, dataset.NewNominalAttribute("class")}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := dataset.NewSchema("test", test.classIndex, test.attrs...)
			if test.fails {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			require.Equal(t, len(test.attrs), s.NumAttributes())
			require.Equal(t, "class", s.ClassAttribute().Name)
			require.Equal(t, 2, s.NumClasses())
		})
	}
}

func TestDecodeJSONRow(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A", "B")

	tests := []struct {
		name  string
		data  string
		want  []types.Value
		fails bool
	}{
		{"array", `[1, 2.5, "B"]`, []types.Value{types.NewNumericValue(1), types.NewNumericValue(2.5), types.NewNominalValue(1)}, false},
		{"object", `{"class": "A", "y": 3, "x": -1}`, []types.Value{types.NewNumericValue(-1), types.NewNumericValue(3), types.NewNominalValue(0)}, false},
		{"object with absent attribute", `{"x": 1}`, []types.Value{types.NewNumericValue(1), types.NewMissingValue(), types.NewMissingValue()}, false},
		{"missing markers", `[null, "?", null]`, []types.Value{types.NewMissingValue(), types.NewMissingValue(), types.NewMissingValue()}, false},
		{"numeric as text", `["4", 1, "A"]`, []types.Value{types.NewNumericValue(4), types.NewNumericValue(1), types.NewNominalValue(0)}, false},
		{"unknown label", `[1, 2, "C"]`, nil, true},
		{"too few values", `[1, 2]`, nil, true},
		{"too many values", `[1, 2, "A", 4]`, nil, true},
		{"unknown attribute", `{"z": 1}`, nil, true},
		{"not a number", `["a", 2, "A"]`, nil, true},
		{"scalar", `12`, nil, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, err := s.DecodeJSONRow([]byte(test.data))
			if test.fails {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			require.Equal(t, test.want, r.Values())
		})
	}
}

func TestNominalNumberLabels(t *testing.T) {
	s := testutil.MakeSchema(t, 0, dataset.NewNominalAttribute("class", "0", "1"))

	r := testutil.MakeRow(t, s, `[1]`)
	code, ok := r.ClassCode()
	require.True(t, ok)
	require.Equal(t, 1, code)
}

func TestDateAttribute(t *testing.T) {
	s := testutil.MakeSchema(t, 1,
		dataset.NewDateAttribute("day", "2006-01-02"),
		dataset.NewNominalAttribute("class", "A"),
	)

	r := testutil.MakeRow(t, s, `["2021-01-02", "A"]`)
	require.Equal(t, types.NewNumericValue(1609545600000), r.Value(0))
	require.Equal(t, "2021-01-02", s.Attribute(0).FormatValue(r.Value(0)))

	_, err := s.DecodeJSONRow([]byte(`["not a date", "A"]`))
	assert.Error(t, err)
}

func TestSchemaValidate(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A", "B")

	_, err := s.NewRow(types.NewNumericValue(1), types.NewNumericValue(1), types.NewNominalValue(2))
	assert.ErrorIs(t, err, dataset.ErrSchemaMismatch)

	_, err = s.NewRow(types.NewNominalValue(0), types.NewNumericValue(1), types.NewNominalValue(0))
	assert.ErrorIs(t, err, dataset.ErrSchemaMismatch)

	r, err := s.NewRow(types.NewNumericValue(1), nil, types.NewNominalValue(0))
	assert.NoError(t, err)
	require.True(t, types.IsMissing(r.Value(1)))

	other := testutil.MakeSchema(t, 0, dataset.NewNominalAttribute("class", "A"))
	assert.ErrorIs(t, s.Validate(testutil.MakeRow(t, other, `["A"]`)), dataset.ErrSchemaMismatch)
}

func TestRowClone(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A", "B")
	r := testutil.MakeRow(t, s, `[1, 2, "B"]`)

	c := r.Clone()
	require.True(t, r.Equal(c))

	vs := c.Values()
	vs[0] = types.NewNumericValue(100)
	require.Equal(t, types.NewNumericValue(1), c.Value(0))

	require.True(t, dataset.Row{}.IsZero())
	require.False(t, c.IsZero())
	require.Equal(t, "[1, 2, 1]", c.String())
	require.Equal(t, "(1, 2, B)", s.FormatRow(c))
}

func TestClassCounts(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A", "B", "C")
	ds := testutil.MakeDataset(t, s,
		`[1, 1, "A"]`,
		`[1, 1, "C"]`,
		`[1, 1, "A"]`,
		`[1, 1, null]`,
	)

	require.Equal(t, []int{2, 0, 1}, ds.ClassCounts())
	require.Equal(t, 2, ds.DistinctClasses())

	num := testutil.MakeSchema(t, 0, dataset.NewNumericAttribute("target"))
	require.Nil(t, dataset.New(num, 0).ClassCounts())
}

func TestRanges(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A")
	ds := testutil.MakeDataset(t, s,
		`[1, null, "A"]`,
		`[-3, null, "A"]`,
		`[7, null, "A"]`,
	)

	rgs := ds.Ranges()
	require.Len(t, rgs, 3)
	require.Equal(t, dataset.Range{Min: -3, Max: 7, Valid: true}, rgs[0])
	require.Equal(t, 10.0, rgs[0].Width())
	require.False(t, rgs[1].Valid)
	require.False(t, rgs[2].Valid)
}

func TestJSONLines(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A", "B")

	in := `[1, 2, "A"]

{"x": 3.5, "class": "B"}
`
	ds, err := dataset.ReadJSON(strings.NewReader(in), s)
	assert.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	var buf bytes.Buffer
	err = dataset.WriteJSON(&buf, ds)
	assert.NoError(t, err)
	require.Equal(t, `{"x": 1, "y": 2, "class": "A"}
{"x": 3.5, "y": null, "class": "B"}
`, buf.String())

	_, err = dataset.ReadJSON(strings.NewReader("[1, 2, \"A\"]\n[1]\n"), s)
	require.ErrorContains(t, err, "line 2")
}

func TestJSONLinesEscaping(t *testing.T) {
	labels := []string{"a\vb", "tab\there", `say "hi"`, "<b>&", "del\x7f", "bell\a", "été"}
	s := testutil.MakeSchema(t, 1,
		dataset.NewNumericAttribute("x\ny"),
		dataset.NewNominalAttribute("class", labels...),
	)

	ds := dataset.New(s, len(labels))
	for i := range labels {
		r, err := s.NewRow(types.NewNumericValue(float64(i)), types.NewNominalValue(i))
		assert.NoError(t, err)
		assert.NoError(t, ds.Add(r))
	}

	var buf bytes.Buffer
	assert.NoError(t, dataset.WriteJSON(&buf, ds))
	require.True(t, strings.HasPrefix(buf.String(), `{"x\ny": 0, "class": "a\u000bb"}`+"\n"), buf.String())
	require.Contains(t, buf.String(), `"<b>&"`)

	got, err := dataset.ReadJSON(&buf, s)
	assert.NoError(t, err)
	testutil.RequireRowsEqual(t, ds.Rows(), got.Rows())
}

func TestReadJSONContext(t *testing.T) {
	s := testutil.MakeXYSchema(t, "A", "B")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dataset.ReadJSONContext(ctx, strings.NewReader("[1, 2, \"A\"]\n"), s)
	require.ErrorIs(t, err, context.Canceled)

	ds, err := dataset.ReadJSONContext(context.Background(), strings.NewReader("[1, 2, \"A\"]\n"), s)
	assert.NoError(t, err)
	require.Equal(t, 1, ds.Len())
}
