package routing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/dispatchsim/core/graph"
)

// Table is an all-pairs travel-time table precomputed with the
// Floyd-Warshall recurrence. Construction costs O(V³) once; queries are
// O(1) lookups afterwards. The table is immutable and does not follow
// later graph edits.
type Table struct {
	index map[string]int
	ids   []string
	dist  *mat.Dense
}

// NewTable builds the table over every vertex of g. Row order follows the
// sorted vertex order of the graph.
func NewTable(g *graph.Graph) *Table {
	ids := g.Vertices()
	n := len(ids)
	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}
	t := &Table{index: index, ids: ids}
	if n == 0 {
		return t
	}

	d := mat.NewDense(n, n, nil)
	inf := math.Inf(1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				d.Set(i, j, inf)
			}
		}
	}
	for i, id := range ids {
		for _, e := range g.NeighborsOf(id) {
			j := index[e.To]
			if e.Weight < d.At(i, j) {
				d.Set(i, j, e.Weight) // parallel edges keep the cheapest
			}
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			ik := d.At(i, k)
			if math.IsInf(ik, 1) {
				continue // nothing routes from i through k
			}
			for j := 0; j < n; j++ {
				if alt := ik + d.At(k, j); alt < d.At(i, j) {
					d.Set(i, j, alt)
				}
			}
		}
	}
	t.dist = d
	return t
}

// TravelTime returns the precomputed distance. Unreachable pairs yield
// +Inf; vertices that were not part of the build yield ErrUnknownVertex.
func (t *Table) TravelTime(from, to string) (float64, error) {
	i, ok := t.index[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVertex, from)
	}
	j, ok := t.index[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVertex, to)
	}
	return t.dist.At(i, j), nil
}

// Order returns the number of vertices covered by the table.
func (t *Table) Order() int { return len(t.ids) }
