package scenarios

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/dispatchsim/core/dispatch"
	"github.com/kilianp07/dispatchsim/core/factory"
	"github.com/kilianp07/dispatchsim/core/graph"
	"github.com/kilianp07/dispatchsim/core/model"
	"github.com/kilianp07/dispatchsim/core/routing"
	"github.com/kilianp07/dispatchsim/infra/logger"
	"github.com/kilianp07/dispatchsim/infra/metrics"
)

// RunScenario executes the scenario under both routing strategies and checks
// the expected assignments, service order and unserved count.
func RunScenario(t *testing.T, sc *Scenario) {
	for _, strategy := range []string{routing.StrategyDijkstra, routing.StrategyFloydWarshall} {
		t.Run(strategy, func(t *testing.T) {
			g := graph.New()
			for _, e := range sc.Edges {
				if err := g.AddEdge(e.Start, e.End, e.TravelTime+e.TrafficDelay); err != nil {
					t.Fatalf("add edge %s->%s: %v", e.Start, e.End, err)
				}
			}
			est, err := routing.NewEstimator(g, factory.ModuleConfig{Type: strategy})
			if err != nil {
				t.Fatalf("estimator: %v", err)
			}

			reg := prometheus.NewRegistry()
			sink, err := metrics.NewPromSinkWithRegistry(reg)
			if err != nil {
				t.Fatalf("prom sink: %v", err)
			}

			fleet := model.NewFleet()
			for _, v := range sc.Fleet {
				if err := fleet.Add(v.ToModel()); err != nil {
					t.Fatalf("add vehicle %s: %v", v.ID, err)
				}
			}

			sched, err := dispatch.NewScheduler(strategy, logger.NopLogger{}, sink, nil)
			if err != nil {
				t.Fatalf("scheduler: %v", err)
			}
			queue := dispatch.NewCallQueue(sc.BuildCalls()...)
			res, err := sched.Run(context.Background(), queue, fleet, est)
			if err != nil {
				t.Fatalf("run: %v", err)
			}

			if len(res.Unserved) != sc.Expected.Unserved {
				t.Errorf("scenario %s expected %d unserved, got %d", sc.Name, sc.Expected.Unserved, len(res.Unserved))
			}

			got := make(map[int]model.DispatchRecord, len(res.Records))
			for _, r := range res.Records {
				got[r.CallID] = r
			}
			for _, want := range sc.Expected.Assignments {
				rec, ok := got[want.CallID]
				if !ok {
					t.Errorf("scenario %s: call %d not dispatched", sc.Name, want.CallID)
					continue
				}
				if rec.VehicleID != want.VehicleID {
					t.Errorf("scenario %s: call %d went to %s, want %s", sc.Name, want.CallID, rec.VehicleID, want.VehicleID)
				}
				if want.TravelTime != 0 && rec.TravelTime != want.TravelTime {
					t.Errorf("scenario %s: call %d travel time %.2f, want %.2f", sc.Name, want.CallID, rec.TravelTime, want.TravelTime)
				}
			}

			if len(sc.Expected.Order) > 0 {
				if len(res.Records) != len(sc.Expected.Order) {
					t.Fatalf("scenario %s: expected %d served calls, got %d", sc.Name, len(sc.Expected.Order), len(res.Records))
				}
				for i, id := range sc.Expected.Order {
					if res.Records[i].CallID != id {
						t.Errorf("scenario %s: position %d served call %d, want %d", sc.Name, i, res.Records[i].CallID, id)
					}
				}
			}
		})
	}
}
