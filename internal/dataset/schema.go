package dataset

import (
	"strings"

	"github.com/chaisql/sift/internal/types"
	"github.com/cockroachdb/errors"
)

// ErrSchemaMismatch is returned when a row doesn't conform to a schema.
var ErrSchemaMismatch = errors.New("row does not match schema")

// A Schema describes the shape shared by every row of a dataset:
// the list of attributes and which one of them is the class.
// A Schema must not be modified once rows have been created with it.
type Schema struct {
	Name string

	attributes []Attribute
	classIndex int
}

// NewSchema creates a schema. classIndex designates the class attribute.
func NewSchema(name string, classIndex int, attrs ...Attribute) (*Schema, error) {
	if len(attrs) == 0 {
		return nil, errors.New("schema must have at least one attribute")
	}
	if classIndex < 0 || classIndex >= len(attrs) {
		return nil, errors.Errorf("class index %d out of range [0, %d)", classIndex, len(attrs))
	}

	seen := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		if _, ok := seen[a.Name]; ok {
			return nil, errors.Errorf("duplicate attribute %q", a.Name)
		}
		seen[a.Name] = struct{}{}

		if a.Kind == KindNominal && len(a.Labels) == 0 {
			return nil, errors.Errorf("nominal attribute %q has no labels", a.Name)
		}
	}

	return &Schema{
		Name:       name,
		attributes: attrs,
		classIndex: classIndex,
	}, nil
}

// NumAttributes returns the number of attributes, class included.
func (s *Schema) NumAttributes() int {
	return len(s.attributes)
}

// Attribute returns the i-th attribute.
func (s *Schema) Attribute(i int) *Attribute {
	return &s.attributes[i]
}

// AttributeIndex returns the position of the attribute with the given name, or -1.
func (s *Schema) AttributeIndex(name string) int {
	for i := range s.attributes {
		if s.attributes[i].Name == name {
			return i
		}
	}

	return -1
}

// ClassIndex returns the position of the class attribute.
func (s *Schema) ClassIndex() int {
	return s.classIndex
}

// ClassAttribute returns the class attribute.
func (s *Schema) ClassAttribute() *Attribute {
	return &s.attributes[s.classIndex]
}

// NumClasses returns the number of labels of a nominal class, 0 otherwise.
func (s *Schema) NumClasses() int {
	ca := s.ClassAttribute()
	if !ca.IsNominal() {
		return 0
	}

	return ca.NumLabels()
}

// NewRow creates a row after checking that each value fits its attribute.
func (s *Schema) NewRow(values ...types.Value) (Row, error) {
	vs := make([]types.Value, len(values))
	for i, v := range values {
		if v == nil {
			v = types.NewMissingValue()
		}
		vs[i] = v
	}

	r := Row{values: vs, classIndex: s.classIndex}
	if err := s.Validate(r); err != nil {
		return Row{}, err
	}

	return r, nil
}

// Validate returns ErrSchemaMismatch if r doesn't conform to the schema.
func (s *Schema) Validate(r Row) error {
	if len(r.values) != len(s.attributes) {
		return errors.Wrapf(ErrSchemaMismatch, "expected %d values, got %d", len(s.attributes), len(r.values))
	}
	if r.classIndex != s.classIndex {
		return errors.Wrapf(ErrSchemaMismatch, "expected class at %d, got %d", s.classIndex, r.classIndex)
	}

	for i := range s.attributes {
		if !s.attributes[i].Accepts(r.values[i]) {
			return errors.Wrapf(ErrSchemaMismatch, "invalid %s value %s for attribute %q", r.values[i].Type(), r.values[i], s.attributes[i].Name)
		}
	}

	return nil
}

// FormatRow returns the textual representation of r, with nominal codes
// replaced by their labels. For example "(1, 1, A)".
func (s *Schema) FormatRow(r Row) string {
	var sb strings.Builder

	sb.WriteByte('(')
	for i, v := range r.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		if i < len(s.attributes) {
			sb.WriteString(s.attributes[i].FormatValue(v))
		} else {
			sb.WriteString(v.String())
		}
	}
	sb.WriteByte(')')

	return sb.String()
}

func (s *Schema) String() string {
	var sb strings.Builder

	sb.WriteString("@relation ")
	sb.WriteString(s.Name)
	for _, a := range s.attributes {
		sb.WriteByte('\n')
		sb.WriteString(a.String())
	}

	return sb.String()
}
