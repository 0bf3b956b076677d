package types

var _ Value = NewMissingValue()

// MissingValue marks an attribute whose value is unknown.
type MissingValue struct{}

// NewMissingValue returns a missing value.
func NewMissingValue() MissingValue {
	return MissingValue{}
}

func (v MissingValue) V() any {
	return nil
}

func (v MissingValue) Type() Type {
	return TypeMissing
}

func (v MissingValue) String() string {
	return "?"
}

func (v MissingValue) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}
