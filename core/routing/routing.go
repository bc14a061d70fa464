// Package routing estimates travel times between vertices of the road
// network. Two interchangeable strategies are provided: on-demand Dijkstra
// searches, which pay O((V+E) log V) per query, and a precomputed
// Floyd-Warshall table, which pays O(V³) once and answers in O(1). The
// dispatch scheduler only sees the Estimator contract and does not know
// which one it is talking to.
package routing

import (
	"errors"
	"math"

	"github.com/kilianp07/dispatchsim/core/factory"
	"github.com/kilianp07/dispatchsim/core/graph"
)

// Strategy names accepted by NewEstimator.
const (
	StrategyDijkstra      = "dijkstra"
	StrategyFloydWarshall = "floydwarshall"
)

// ErrUnknownVertex reports a query for a vertex that is not part of the
// network the estimator was built from. It is distinct from an unreachable
// destination, which yields +Inf and no error.
var ErrUnknownVertex = errors.New("routing: unknown vertex")

// Estimator answers point-to-point travel-time queries. Implementations
// return +Inf with a nil error for unreachable destinations and
// ErrUnknownVertex for vertices outside the network.
type Estimator interface {
	TravelTime(from, to string) (float64, error)
}

// Unreachable reports whether a travel time stands for "no path".
func Unreachable(d float64) bool { return math.IsInf(d, 1) }

// NewEstimator builds the strategy selected by cfg over g.
func NewEstimator(g *graph.Graph, cfg factory.ModuleConfig) (Estimator, error) {
	reg := factory.NewRegistry[Estimator]()
	_ = reg.Register(StrategyDijkstra, func(map[string]any) (Estimator, error) {
		return NewDijkstra(g), nil
	})
	_ = reg.Register(StrategyFloydWarshall, func(map[string]any) (Estimator, error) {
		return NewTable(g), nil
	})
	return reg.Create(cfg)
}
