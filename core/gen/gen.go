// Package gen produces synthetic dispatch scenarios for benchmarks and
// end-to-end tests. Generation is fully determined by the seed so a scenario
// can be regenerated from its parameters alone.
package gen

import (
	"fmt"
	"math/rand"

	"github.com/kilianp07/dispatchsim/core/graph"
	"github.com/kilianp07/dispatchsim/core/model"
)

// DefaultCallTypes is the priority ladder used when Config.CallTypes is empty.
// Position in the slice becomes the priority, most urgent first.
var DefaultCallTypes = []string{
	"Cardiac Arrest",
	"Structure Fire",
	"Traffic Accident",
	"Fall",
	"Noise Complaint",
}

// Config holds parameters for scenario generation.
type Config struct {
	Vertices  int
	OutDegree int
	Vehicles  int
	Calls     int
	MaxTravel float64
	MaxDelay  float64
	Seed      int64
	CallTypes []string
}

// Edge is one generated road segment before delay folding.
type Edge struct {
	Start        string
	End          string
	TravelTime   float64
	TrafficDelay float64
}

// Scenario is a complete synthetic input set: network, fleet, calls and the
// priority table the calls were resolved against.
type Scenario struct {
	Edges      []Edge
	Fleet      []model.Vehicle
	Calls      []model.Call
	Priorities model.PriorityTable
}

// Generate creates a scenario from cfg. Vertices are laid out on a directed
// ring so every location stays reachable; OutDegree-1 extra random edges per
// vertex densify the network on top of that.
func Generate(cfg Config) (Scenario, error) {
	if cfg.Vertices <= 0 {
		return Scenario{}, fmt.Errorf("gen: vertex count must be positive, got %d", cfg.Vertices)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	types := cfg.CallTypes
	if len(types) == 0 {
		types = DefaultCallTypes
	}
	maxTravel := cfg.MaxTravel
	if maxTravel <= 0 {
		maxTravel = 10
	}
	degree := cfg.OutDegree
	if degree < 1 {
		degree = 1
	}

	nodes := make([]string, cfg.Vertices)
	for i := range nodes {
		nodes[i] = fmt.Sprintf("n%03d", i+1)
	}

	sc := Scenario{Priorities: model.PriorityTable{}}
	for i, t := range types {
		sc.Priorities[t] = i + 1
	}

	for i, start := range nodes {
		next := nodes[(i+1)%len(nodes)]
		sc.Edges = append(sc.Edges, randomEdge(rng, start, next, maxTravel, cfg.MaxDelay))
		for d := 1; d < degree; d++ {
			end := nodes[rng.Intn(len(nodes))]
			if end == start {
				continue
			}
			sc.Edges = append(sc.Edges, randomEdge(rng, start, end, maxTravel, cfg.MaxDelay))
		}
	}

	for i := 0; i < cfg.Vehicles; i++ {
		sc.Fleet = append(sc.Fleet, model.Vehicle{
			ID:       fmt.Sprintf("amb%03d", i+1),
			Location: nodes[rng.Intn(len(nodes))],
		})
	}

	for i := 0; i < cfg.Calls; i++ {
		ct := types[rng.Intn(len(types))]
		sc.Calls = append(sc.Calls, model.Call{
			ID:       i + 1,
			Location: nodes[rng.Intn(len(nodes))],
			Type:     ct,
			Priority: sc.Priorities.PriorityFor(ct),
		})
	}
	return sc, nil
}

func randomEdge(rng *rand.Rand, start, end string, maxTravel, maxDelay float64) Edge {
	e := Edge{Start: start, End: end}
	e.TravelTime = model.RoundTravelTime(rng.Float64() * maxTravel)
	if e.TravelTime < 0.1 {
		e.TravelTime = 0.1
	}
	if maxDelay > 0 {
		e.TrafficDelay = model.RoundTravelTime(rng.Float64() * maxDelay)
	}
	return e
}

// Graph assembles the routable network, folding traffic delay into the edge
// weight the same way the CSV loader does.
func (s Scenario) Graph() (*graph.Graph, error) {
	g := graph.New()
	for _, e := range s.Edges {
		if err := g.AddEdge(e.Start, e.End, e.TravelTime+e.TrafficDelay); err != nil {
			return nil, err
		}
	}
	return g, nil
}
