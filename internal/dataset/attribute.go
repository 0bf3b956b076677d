package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/chaisql/sift/internal/types"
	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrUnknownLabel is returned when a nominal value doesn't match any label
// of its attribute.
var ErrUnknownLabel = errors.New("unknown label")

// Kind describes how the values of an attribute are interpreted.
type Kind uint8

// List of supported attribute kinds.
const (
	KindNumeric Kind = iota + 1
	KindNominal
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindNominal:
		return "nominal"
	case KindDate:
		return "date"
	}

	return "unknown"
}

// ParseKind parses the textual representation of a kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "numeric", "real", "integer":
		return KindNumeric, nil
	case "nominal":
		return KindNominal, nil
	case "date":
		return KindDate, nil
	}

	return 0, errors.Errorf("unknown attribute type %q", s)
}

// Attribute describes one column of a dataset.
type Attribute struct {
	Name string
	Kind Kind
	// Labels of a nominal attribute. The position of a label is its code.
	Labels []string
	// Layout used to parse and format date attributes, using the time package
	// reference layout. When empty, dates are parsed leniently and
	// formatted as "2006-01-02 15:04:05".
	Layout string

	codes map[string]int
}

// NewNumericAttribute returns a numeric attribute.
func NewNumericAttribute(name string) Attribute {
	return Attribute{Name: name, Kind: KindNumeric}
}

// NewNominalAttribute returns a nominal attribute whose codes are the positions
// of the given labels.
func NewNominalAttribute(name string, labels ...string) Attribute {
	a := Attribute{Name: name, Kind: KindNominal, Labels: labels}
	a.codes = make(map[string]int, len(labels))
	for i, l := range labels {
		a.codes[l] = i
	}
	return a
}

// NewDateAttribute returns a date attribute. Dates are stored as numeric values
// holding milliseconds since the Unix epoch.
func NewDateAttribute(name, layout string) Attribute {
	return Attribute{Name: name, Kind: KindDate, Layout: layout}
}

// IsNominal returns true for nominal attributes.
func (a *Attribute) IsNominal() bool {
	return a.Kind == KindNominal
}

// IsNumeric returns true for attributes stored as numeric values.
func (a *Attribute) IsNumeric() bool {
	return a.Kind == KindNumeric || a.Kind == KindDate
}

// NumLabels returns the number of labels of a nominal attribute.
func (a *Attribute) NumLabels() int {
	return len(a.Labels)
}

// Code returns the code of the given label.
func (a *Attribute) Code(label string) (int, bool) {
	if a.codes == nil {
		for i, l := range a.Labels {
			if l == label {
				return i, true
			}
		}
		return 0, false
	}

	c, ok := a.codes[label]
	return c, ok
}

// Label returns the label associated with the given code.
func (a *Attribute) Label(code int) (string, bool) {
	if code < 0 || code >= len(a.Labels) {
		return "", false
	}

	return a.Labels[code], true
}

// Accepts returns true if v can be stored in this attribute.
func (a *Attribute) Accepts(v types.Value) bool {
	if types.IsMissing(v) {
		return true
	}

	switch a.Kind {
	case KindNominal:
		if v.Type() != types.TypeNominal {
			return false
		}
		c := types.AsCode(v)
		return c >= 0 && c < len(a.Labels)
	default:
		return v.Type() == types.TypeNumeric
	}
}

// ParseValue converts the textual representation of a value.
// "?" and the empty string denote a missing value.
func (a *Attribute) ParseValue(s string) (types.Value, error) {
	if s == "?" || s == "" {
		return types.NewMissingValue(), nil
	}

	switch a.Kind {
	case KindNominal:
		c, ok := a.Code(s)
		if !ok {
			labels := slices.Clone(a.Labels)
			if a.codes != nil {
				labels = maps.Keys(a.codes)
			}
			slices.Sort(labels)
			return nil, errors.Wrapf(ErrUnknownLabel, "%q for attribute %q, expected one of %v", s, a.Name, labels)
		}
		return types.NewNominalValue(c), nil
	case KindDate:
		ms, err := a.parseDate(s)
		if err != nil {
			return nil, err
		}
		return types.NewNumericValue(float64(ms)), nil
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid numeric value for attribute %q", a.Name)
		}
		return types.NewNumericValue(f), nil
	}
}

func (a *Attribute) parseDate(s string) (int64, error) {
	var c carbon.Carbon
	if a.Layout != "" {
		c = carbon.ParseByLayout(s, a.Layout, "UTC")
	} else {
		c = carbon.Parse(s, "UTC")
	}
	if c.Error != nil {
		return 0, errors.Wrapf(c.Error, "invalid date value for attribute %q", a.Name)
	}

	return c.ToStdTime().UnixMilli(), nil
}

// FormatValue returns the textual representation of v,
// the reverse operation of ParseValue.
func (a *Attribute) FormatValue(v types.Value) string {
	if types.IsMissing(v) {
		return "?"
	}

	switch a.Kind {
	case KindNominal:
		if l, ok := a.Label(types.AsCode(v)); ok {
			return l
		}
	case KindDate:
		tm := time.UnixMilli(int64(types.AsFloat64(v))).UTC()
		if a.Layout != "" {
			return tm.Format(a.Layout)
		}
		return tm.Format(time.DateTime)
	}

	return v.String()
}

// String returns a description of the attribute, for example
// "@attribute class {yes,no}".
func (a Attribute) String() string {
	var sb strings.Builder

	sb.WriteString("@attribute ")
	sb.WriteString(a.Name)
	sb.WriteByte(' ')
	switch a.Kind {
	case KindNominal:
		sb.WriteByte('{')
		sb.WriteString(strings.Join(a.Labels, ","))
		sb.WriteByte('}')
	case KindDate:
		sb.WriteString("date")
		if a.Layout != "" {
			sb.WriteString(" " + strconv.Quote(a.Layout))
		}
	default:
		sb.WriteString("numeric")
	}

	return sb.String()
}
