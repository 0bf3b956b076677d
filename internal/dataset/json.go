package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/buger/jsonparser"
	"github.com/chaisql/sift/internal/types"
	"github.com/cockroachdb/errors"
)

// maximum size of a single JSON line.
const maxLineSize = 16 * 1024 * 1024

// DecodeJSONRow parses a row encoded either as a JSON array holding one
// value per attribute, or as a JSON object keyed by attribute name.
// Attributes absent from an object are missing.
func (s *Schema) DecodeJSONRow(data []byte) (Row, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Row{}, errors.New("empty row")
	}

	values := make([]types.Value, len(s.attributes))

	switch data[0] {
	case '[':
		var i int
		var perr error
		_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
			if perr != nil {
				return
			}
			if i >= len(s.attributes) {
				perr = errors.Wrapf(ErrSchemaMismatch, "expected %d values, got more", len(s.attributes))
				return
			}
			values[i], perr = s.attributes[i].parseJSONValue(dataType, value)
			i++
		})
		if err != nil {
			return Row{}, errors.Wrap(err, "invalid JSON array")
		}
		if perr != nil {
			return Row{}, perr
		}
		if i != len(s.attributes) {
			return Row{}, errors.Wrapf(ErrSchemaMismatch, "expected %d values, got %d", len(s.attributes), i)
		}
	case '{':
		err := jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
			name, err := jsonparser.ParseString(key)
			if err != nil {
				return errors.Wrap(err, "invalid attribute name")
			}
			idx := s.AttributeIndex(name)
			if idx < 0 {
				return errors.Wrapf(ErrSchemaMismatch, "unknown attribute %q", name)
			}

			v, err := s.attributes[idx].parseJSONValue(dataType, value)
			if err != nil {
				return err
			}
			values[idx] = v
			return nil
		})
		if err != nil {
			return Row{}, err
		}
	default:
		return Row{}, errors.Errorf("row must be a JSON array or object, got %q", data[0])
	}

	return s.NewRow(values...)
}

func (a *Attribute) parseJSONValue(dataType jsonparser.ValueType, data []byte) (types.Value, error) {
	switch dataType {
	case jsonparser.Null:
		return types.NewMissingValue(), nil
	case jsonparser.Number:
		if a.Kind == KindNominal {
			// nominal labels may look like numbers
			return a.ParseValue(string(data))
		}
		f, err := jsonparser.ParseFloat(data)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number for attribute %q", a.Name)
		}
		return types.NewNumericValue(f), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, err
		}
		return a.ParseValue(s)
	case jsonparser.Boolean:
		return a.ParseValue(string(data))
	default:
		return nil, errors.Errorf("unsupported JSON type %v for attribute %q", dataType, a.Name)
	}
}

// ReadJSON reads a dataset encoded as JSON lines: one row per line.
// Blank lines are ignored.
func ReadJSON(r io.Reader, schema *Schema) (*Dataset, error) {
	return ReadJSONContext(context.Background(), r, schema)
}

// ReadJSONContext is like ReadJSON but stops with the context error once ctx
// is done. The context is checked between lines: a blocked read is only
// interrupted if the caller closes r.
func ReadJSONContext(ctx context.Context, r io.Reader, schema *Schema) (*Dataset, error) {
	ds := New(schema, 0)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var line int
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}

		line++
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}

		row, err := schema.DecodeJSONRow(data)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		ds.rows = append(ds.rows, row)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	return ds, nil
}

// MarshalJSONRow encodes a row as a JSON object keyed by attribute name.
// Nominal values are written as their label, dates using the attribute layout.
func (s *Schema) MarshalJSONRow(r Row) ([]byte, error) {
	if err := s.Validate(r); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	buf.WriteByte('{')
	for i, v := range r.values {
		if i > 0 {
			buf.WriteString(", ")
		}

		a := &s.attributes[i]
		if err := writeJSONString(&buf, a.Name); err != nil {
			return nil, err
		}
		buf.WriteString(": ")

		switch {
		case types.IsMissing(v):
			buf.WriteString("null")
		case a.Kind == KindNumeric:
			buf.WriteString(v.String())
		default:
			if err := writeJSONString(&buf, a.FormatValue(v)); err != nil {
				return nil, err
			}
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// writeJSONString writes s as a JSON string. Control characters are escaped
// as \u00XX and invalid UTF-8 is replaced with U+FFFD.
func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return errors.WithStack(err)
	}

	// Encode terminates the value with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// WriteJSON writes every row of ds as JSON lines.
func WriteJSON(w io.Writer, ds *Dataset) error {
	bw := bufio.NewWriter(w)

	for _, r := range ds.rows {
		data, err := ds.schema.MarshalJSONRow(r)
		if err != nil {
			return err
		}
		if _, err := bw.Write(data); err != nil {
			return errors.WithStack(err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return errors.WithStack(err)
		}
	}

	return errors.WithStack(bw.Flush())
}
