package routing

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/kilianp07/dispatchsim/core/graph"
)

// Dijkstra answers travel-time queries with an on-demand label-setting
// search over the network. Every query runs from scratch; nothing is cached
// in between, so graph edits between queries are picked up immediately.
type Dijkstra struct {
	g *graph.Graph
}

// NewDijkstra returns an Estimator backed by per-query searches on g.
func NewDijkstra(g *graph.Graph) *Dijkstra { return &Dijkstra{g: g} }

// TravelTime runs a search from `from` and stops as soon as `to` is
// finalized. Unreachable destinations yield +Inf, vertices outside the
// network yield ErrUnknownVertex.
func (d *Dijkstra) TravelTime(from, to string) (float64, error) {
	if !d.g.Has(from) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVertex, from)
	}
	if !d.g.Has(to) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVertex, to)
	}

	dist := make(map[string]float64, d.g.Order())
	for _, v := range d.g.Vertices() {
		dist[v] = math.Inf(1)
	}
	dist[from] = 0

	pq := make(frontier, 0, d.g.Order())
	heap.Push(&pq, &frontierItem{id: from, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*frontierItem)
		if item.dist > dist[item.id] {
			continue // stale entry, a cheaper path was queued later
		}
		if item.id == to {
			return item.dist, nil
		}
		for _, e := range d.g.NeighborsOf(item.id) {
			if alt := item.dist + e.Weight; alt < dist[e.To] {
				dist[e.To] = alt
				heap.Push(&pq, &frontierItem{id: e.To, dist: alt})
			}
		}
	}
	return math.Inf(1), nil
}

// frontierItem is a pending (vertex, tentative distance) pair. Improvements
// push a fresh item instead of a decrease-key; the superseded one is
// dropped when popped.
type frontierItem struct {
	id   string
	dist float64
}

type frontier []*frontierItem

func (f frontier) Len() int           { return len(f) }
func (f frontier) Less(i, j int) bool { return f[i].dist < f[j].dist }
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(*frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return it
}
