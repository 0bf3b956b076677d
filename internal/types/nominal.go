package types

import (
	"strconv"
)

var _ Value = NewNominalValue(0)

// NominalValue is the integer code of a nominal label.
// Codes index the label list of the attribute the value belongs to.
type NominalValue int32

// NewNominalValue returns a nominal value for the given label code.
func NewNominalValue(code int) NominalValue {
	return NominalValue(code)
}

func (v NominalValue) V() any {
	return int(v)
}

func (v NominalValue) Type() Type {
	return TypeNominal
}

func (v NominalValue) String() string {
	return strconv.Itoa(int(v))
}

func (v NominalValue) MarshalJSON() ([]byte, error) {
	return []byte(v.String()), nil
}
