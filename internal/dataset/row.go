package dataset

import (
	"strings"

	"github.com/chaisql/sift/internal/types"
)

// A Row is an instance of a dataset: one value per attribute of its schema,
// one of which is the class value.
// Rows are immutable. Use Schema.NewRow to create one.
type Row struct {
	values     []types.Value
	classIndex int
}

// Len returns the number of values of the row, class included.
func (r Row) Len() int {
	return len(r.values)
}

// IsZero returns true if r is the zero Row.
func (r Row) IsZero() bool {
	return r.values == nil
}

// Value returns the i-th value.
func (r Row) Value(i int) types.Value {
	return r.values[i]
}

// Values returns a copy of the values of the row.
func (r Row) Values() []types.Value {
	vs := make([]types.Value, len(r.values))
	copy(vs, r.values)
	return vs
}

// ClassIndex returns the position of the class value.
func (r Row) ClassIndex() int {
	return r.classIndex
}

// Class returns the class value.
func (r Row) Class() types.Value {
	return r.values[r.classIndex]
}

// ClassCode returns the code of a nominal class value.
// It returns false if the class is missing or isn't nominal.
func (r Row) ClassCode() (int, bool) {
	v := r.Class()
	if types.IsMissing(v) || v.Type() != types.TypeNominal {
		return 0, false
	}

	return types.AsCode(v), true
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	if r.values == nil {
		return r
	}

	return Row{values: r.Values(), classIndex: r.classIndex}
}

// Equal returns true if both rows hold equal values at every position.
func (r Row) Equal(other Row) bool {
	if len(r.values) != len(other.values) || r.classIndex != other.classIndex {
		return false
	}

	for i := range r.values {
		if !types.IsEqual(r.values[i], other.values[i]) {
			return false
		}
	}

	return true
}

func (r Row) String() string {
	var sb strings.Builder

	sb.WriteByte('[')
	for i, v := range r.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')

	return sb.String()
}
