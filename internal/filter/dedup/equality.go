package dedup

import (
	"github.com/chaisql/sift/internal/dataset"
	"github.com/chaisql/sift/internal/types"
	"github.com/google/btree"
)

// degree of the b-tree used to detect duplicates.
const degree = 16

// Relation is a total order over the rows of a schema. Rows are compared
// attribute by attribute, in schema order, using types.Compare. The class
// attribute can be left out of the comparison.
type Relation struct {
	classIndex   int
	includeClass bool
}

// NewRelation returns the relation comparing rows of s.
func NewRelation(s *dataset.Schema, includeClass bool) Relation {
	return Relation{
		classIndex:   s.ClassIndex(),
		includeClass: includeClass,
	}
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to,
// or after b. Both rows must share the same schema.
func (rel Relation) Compare(a, b dataset.Row) int {
	for i := 0; i < a.Len(); i++ {
		if i == rel.classIndex && !rel.includeClass {
			continue
		}

		if c := types.Compare(a.Value(i), b.Value(i)); c != 0 {
			return c
		}
	}

	return 0
}

// Equal reports whether a and b are duplicates of each other.
func (rel Relation) Equal(a, b dataset.Row) bool {
	return rel.Compare(a, b) == 0
}

// Less reports whether a sorts before b.
func (rel Relation) Less(a, b dataset.Row) bool {
	return rel.Compare(a, b) < 0
}

// A Set holds one row per equivalence class of a relation.
type Set struct {
	tr *btree.BTreeG[dataset.Row]
}

// NewSet returns an empty set ordered by rel.
func NewSet(rel Relation) *Set {
	return &Set{
		tr: btree.NewG(degree, rel.Less),
	}
}

// Add inserts r in the set and reports whether no equal row was present.
func (s *Set) Add(r dataset.Row) bool {
	n := s.tr.Len()
	s.tr.ReplaceOrInsert(r)
	return s.tr.Len() > n
}

// Len returns the number of distinct rows in the set.
func (s *Set) Len() int {
	return s.tr.Len()
}
