package types

// Compare returns an integer comparing two values.
// The result is 0 if a == b, -1 if a < b and +1 if a > b.
//
// Compare defines a total order over all values:
// missing values sort before anything else and are equal to each other,
// then values are ordered by type (numeric before nominal),
// then by their numeric value or label code.
func Compare(a, b Value) int {
	am, bm := IsMissing(a), IsMissing(b)
	switch {
	case am && bm:
		return 0
	case am:
		return -1
	case bm:
		return 1
	}

	if a.Type() != b.Type() {
		if a.Type() < b.Type() {
			return -1
		}
		return 1
	}

	switch a.Type() {
	case TypeNominal:
		return compareInts(AsCode(a), AsCode(b))
	default:
		return compareFloats(AsFloat64(a), AsFloat64(b))
	}
}

// IsEqual returns true if a and b compare equal.
func IsEqual(a, b Value) bool {
	return Compare(a, b) == 0
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
