package types

import (
	"math"
	"strconv"
)

var _ Value = NewNumericValue(0)

// NumericValue is a real-valued attribute value.
// Date attributes are stored as numeric values holding epoch milliseconds.
type NumericValue float64

// NewNumericValue returns a numeric value.
func NewNumericValue(x float64) NumericValue {
	return NumericValue(x)
}

func (v NumericValue) V() any {
	return float64(v)
}

func (v NumericValue) Type() Type {
	return TypeNumeric
}

func (v NumericValue) String() string {
	f := float64(v)
	abs := math.Abs(f)
	fmt := byte('f')
	if abs != 0 {
		if abs < 1e-6 || abs >= 1e15 {
			fmt = 'e'
		}
	}

	// By default the precision is -1 to use the smallest number of digits.
	// See https://pkg.go.dev/strconv#FormatFloat
	return strconv.FormatFloat(f, fmt, -1, 64)
}

func (v NumericValue) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}
