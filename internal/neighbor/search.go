// Package neighbor finds the nearest rows of a dataset.
package neighbor

import (
	"sort"

	"github.com/chaisql/sift/internal/dataset"
	"github.com/cockroachdb/errors"
)

// A Neighbor is a row returned by a search.
type Neighbor struct {
	// Index of the row in the searched dataset.
	Index    int
	Row      dataset.Row
	Distance float64
}

// A Search returns the k nearest rows of a dataset.
//
// Results are ordered by increasing distance; rows at equal distance are
// ordered by increasing index. At most k rows are returned, fewer if the
// dataset doesn't hold enough candidates.
type Search interface {
	// Nearest returns the k rows nearest to query.
	Nearest(query dataset.Row, k int) ([]Neighbor, error)
	// NearestTo returns the k rows nearest to the row at index i,
	// excluding that row itself.
	NearestTo(i int, k int) ([]Neighbor, error)
}

var _ Search = (*LinearSearch)(nil)

// LinearSearch compares the query against every row of the dataset.
type LinearSearch struct {
	ds   *dataset.Dataset
	dist *Distance
}

// NewLinearSearch builds a linear search over ds.
func NewLinearSearch(ds *dataset.Dataset, m Metric) *LinearSearch {
	return &LinearSearch{
		ds:   ds,
		dist: NewDistance(ds, m),
	}
}

// Nearest implements the Search interface.
func (s *LinearSearch) Nearest(query dataset.Row, k int) ([]Neighbor, error) {
	if err := s.ds.Schema().Validate(query); err != nil {
		return nil, err
	}

	return s.search(query, -1, k)
}

// NearestTo implements the Search interface.
func (s *LinearSearch) NearestTo(i int, k int) ([]Neighbor, error) {
	if i < 0 || i >= s.ds.Len() {
		return nil, errors.Errorf("row index %d out of range [0, %d)", i, s.ds.Len())
	}

	return s.search(s.ds.Row(i), i, k)
}

func (s *LinearSearch) search(query dataset.Row, skip, k int) ([]Neighbor, error) {
	if k < 1 {
		return nil, errors.Errorf("k must be positive, got %d", k)
	}

	nbrs := make([]Neighbor, 0, s.ds.Len())
	for j, r := range s.ds.Rows() {
		if j == skip {
			continue
		}

		nbrs = append(nbrs, Neighbor{
			Index:    j,
			Row:      r,
			Distance: s.dist.Between(query, r),
		})
	}

	sort.Slice(nbrs, func(a, b int) bool {
		if nbrs[a].Distance != nbrs[b].Distance {
			return nbrs[a].Distance < nbrs[b].Distance
		}
		return nbrs[a].Index < nbrs[b].Index
	})

	if len(nbrs) > k {
		nbrs = nbrs[:k]
	}

	return nbrs, nil
}
