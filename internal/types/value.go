package types

import (
	"math"
)

// AsFloat64 returns the float representation of a numeric value.
// Nominal codes are converted to their float value.
func AsFloat64(v Value) float64 {
	switch t := v.(type) {
	case NumericValue:
		return float64(t)
	case NominalValue:
		return float64(t)
	}

	return v.V().(float64)
}

// AsCode returns the label code of a nominal value.
func AsCode(v Value) int {
	nv, ok := v.(NominalValue)
	if !ok {
		return v.V().(int)
	}

	return int(nv)
}

// IsMissing returns true if v is nil, a missing value or a NaN numeric value.
func IsMissing(v Value) bool {
	if v == nil || v.Type() == TypeMissing {
		return true
	}

	if nv, ok := v.(NumericValue); ok {
		return math.IsNaN(float64(nv))
	}

	return false
}
