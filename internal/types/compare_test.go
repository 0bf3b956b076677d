package types_test

import (
	"math"
	"testing"

	"github.com/chaisql/sift/internal/types"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	missing := types.NewMissingValue()
	num := func(f float64) types.Value { return types.NewNumericValue(f) }
	nom := func(c int) types.Value { return types.NewNominalValue(c) }

	tests := []struct {
		name string
		a, b types.Value
		want int
	}{
		{"missing/missing", missing, missing, 0},
		{"missing/nil", missing, nil, 0},
		{"missing/numeric", missing, num(-10), -1},
		{"numeric/missing", num(-10), missing, 1},
		{"nan is missing", num(math.NaN()), missing, 0},
		{"numeric lt", num(1), num(2), -1},
		{"numeric gt", num(2.5), num(2), 1},
		{"numeric eq", num(3), num(3), 0},
		{"nominal lt", nom(0), nom(1), -1},
		{"nominal eq", nom(4), nom(4), 0},
		{"numeric before nominal", num(100), nom(0), -1},
		{"nominal after numeric", nom(0), num(100), 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.want, types.Compare(test.a, test.b))
			require.Equal(t, -test.want, types.Compare(test.b, test.a))
			require.Equal(t, test.want == 0, types.IsEqual(test.a, test.b))
		})
	}
}

func TestValueString(t *testing.T) {
	require.Equal(t, "?", types.NewMissingValue().String())
	require.Equal(t, "1.5", types.NewNumericValue(1.5).String())
	require.Equal(t, "10", types.NewNumericValue(10).String())
	require.Equal(t, "1e-07", types.NewNumericValue(1e-7).String())
	require.Equal(t, "3", types.NewNominalValue(3).String())
}

func TestIsMissing(t *testing.T) {
	require.True(t, types.IsMissing(nil))
	require.True(t, types.IsMissing(types.NewMissingValue()))
	require.True(t, types.IsMissing(types.NewNumericValue(math.NaN())))
	require.False(t, types.IsMissing(types.NewNumericValue(0)))
	require.False(t, types.IsMissing(types.NewNominalValue(0)))
}
