package dataset

import (
	"math"

	"github.com/chaisql/sift/internal/types"
)

// A Dataset is an ordered sequence of rows sharing one schema.
type Dataset struct {
	schema *Schema
	rows   []Row
}

// New creates an empty dataset. capacity is a hint for the number of rows.
func New(schema *Schema, capacity int) *Dataset {
	return &Dataset{
		schema: schema,
		rows:   make([]Row, 0, capacity),
	}
}

// Schema returns the schema of the dataset.
func (d *Dataset) Schema() *Schema {
	return d.schema
}

// Add appends a row to the dataset. The row must conform to the schema.
func (d *Dataset) Add(r Row) error {
	if err := d.schema.Validate(r); err != nil {
		return err
	}

	d.rows = append(d.rows, r)
	return nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Row returns the i-th row.
func (d *Dataset) Row(i int) Row {
	return d.rows[i]
}

// Rows returns the rows of the dataset. The returned slice must not be modified.
func (d *Dataset) Rows() []Row {
	return d.rows
}

// ClassCounts returns, for each class code, the number of rows holding it.
// Rows with a missing class are ignored. The class must be nominal, otherwise
// nil is returned.
func (d *Dataset) ClassCounts() []int {
	n := d.schema.NumClasses()
	if n == 0 {
		return nil
	}

	counts := make([]int, n)
	for _, r := range d.rows {
		if c, ok := r.ClassCode(); ok {
			counts[c]++
		}
	}

	return counts
}

// DistinctClasses returns the number of class codes that appear at least once.
func (d *Dataset) DistinctClasses() int {
	var n int
	for _, c := range d.ClassCounts() {
		if c > 0 {
			n++
		}
	}

	return n
}

// A Range holds the bounds of the non-missing values of a numeric attribute.
// Valid is false if the attribute isn't numeric or has no value.
type Range struct {
	Min, Max float64
	Valid    bool
}

// Width returns Max - Min.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// Ranges returns the range of each attribute.
func (d *Dataset) Ranges() []Range {
	ranges := make([]Range, d.schema.NumAttributes())
	for i := range ranges {
		if !d.schema.Attribute(i).IsNumeric() {
			continue
		}

		rg := Range{Min: math.Inf(1), Max: math.Inf(-1)}
		for _, r := range d.rows {
			v := r.Value(i)
			if types.IsMissing(v) {
				continue
			}
			f := types.AsFloat64(v)
			rg.Min = math.Min(rg.Min, f)
			rg.Max = math.Max(rg.Max, f)
			rg.Valid = true
		}
		if rg.Valid {
			ranges[i] = rg
		}
	}

	return ranges
}
