package types

import (
	"fmt"
)

// Type represents the type of an attribute value.
type Type uint8

// List of supported types.
const (
	// TypeMissing denotes the absence of a value.
	TypeMissing Type = iota + 1
	TypeNumeric
	TypeNominal
)

func (t Type) String() string {
	switch t {
	case TypeMissing:
		return "missing"
	case TypeNumeric:
		return "numeric"
	case TypeNominal:
		return "nominal"
	}

	panic(fmt.Sprintf("unsupported type %#v", t))
}

// A Value is a single attribute value of a row.
// Values are immutable.
type Value interface {
	Type() Type
	V() any
	String() string
}
