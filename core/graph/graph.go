package graph

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrNegativeWeight is returned by AddEdge when the weight is negative.
var ErrNegativeWeight = errors.New("graph: negative edge weight")

// ErrBadWeight is returned by AddEdge when the weight is NaN or infinite.
var ErrBadWeight = errors.New("graph: non-finite edge weight")

// Edge is a directed connection to a destination vertex carrying a travel
// weight.
type Edge struct {
	To     string
	Weight float64
}

// Graph is a directed weighted graph over string vertex IDs. Use New; the
// zero value is not usable.
type Graph struct {
	adj map[string][]Edge
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[string][]Edge)}
}

// AddEdge inserts a directed edge from source to destination and registers
// both endpoints. Weights must be finite and non-negative. Parallel edges
// are kept as inserted, nothing is merged.
func (g *Graph) AddEdge(source, destination string, weight float64) error {
	if source == "" || destination == "" {
		return fmt.Errorf("graph: edge %q->%q has an empty vertex id", source, destination)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("%w: %v on %s->%s", ErrBadWeight, weight, source, destination)
	}
	if weight < 0 {
		return fmt.Errorf("%w: %v on %s->%s", ErrNegativeWeight, weight, source, destination)
	}
	g.adj[source] = append(g.adj[source], Edge{To: destination, Weight: weight})
	if _, ok := g.adj[destination]; !ok {
		g.adj[destination] = nil
	}
	return nil
}

// Has reports whether v has been registered as an endpoint.
func (g *Graph) Has(v string) bool {
	_, ok := g.adj[v]
	return ok
}

// Vertices returns every registered vertex in sorted order.
func (g *Graph) Vertices() []string {
	out := make([]string, 0, len(g.adj))
	for v := range g.adj {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// NeighborsOf returns a copy of the outgoing edges of v in insertion
// order. Sink and unknown vertices yield nil.
func (g *Graph) NeighborsOf(v string) []Edge {
	edges := g.adj[v]
	if len(edges) == 0 {
		return nil
	}
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

// Order returns the number of registered vertices.
func (g *Graph) Order() int {
	return len(g.adj)
}
