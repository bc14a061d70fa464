package dispatch

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kilianp07/dispatchsim/core/dispatch/logging"
	"github.com/kilianp07/dispatchsim/core/events"
	"github.com/kilianp07/dispatchsim/core/fleetstatus"
	"github.com/kilianp07/dispatchsim/core/graph"
	"github.com/kilianp07/dispatchsim/core/metrics"
	"github.com/kilianp07/dispatchsim/core/model"
	"github.com/kilianp07/dispatchsim/core/routing"
	"github.com/kilianp07/dispatchsim/infra/logger"
	"github.com/kilianp07/dispatchsim/internal/eventbus"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	edges := []struct {
		from, to string
		w        float64
	}{
		{"A", "X", 1}, {"X", "B", 3}, {"A", "B", 5}, {"C", "D", 2},
	}
	for _, e := range edges {
		if err := g.AddEdge(e.from, e.to, e.w); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}
	return g
}

func testFleet(t *testing.T, placements ...[2]string) *model.Fleet {
	t.Helper()
	f := model.NewFleet()
	for _, p := range placements {
		if err := f.Add(model.Vehicle{ID: p[0], Location: p[1]}); err != nil {
			t.Fatalf("add vehicle %s: %v", p[0], err)
		}
	}
	return f
}

func newTestScheduler(t *testing.T, sink metrics.MetricsSink, bus eventbus.EventBus) *Scheduler {
	t.Helper()
	s, err := NewScheduler(routing.StrategyDijkstra, logger.NopLogger{}, sink, bus)
	if err != nil {
		t.Fatalf("scheduler: %v", err)
	}
	return s
}

func TestSchedulerAssignsNearestVehicle(t *testing.T) {
	g := testGraph(t)
	fleet := testFleet(t, [2]string{"V1", "A"}, [2]string{"V2", "C"})
	queue := NewCallQueue(model.Call{ID: 1, Location: "B", Type: "Cardiac Arrest", Priority: 1})
	s := newTestScheduler(t, nil, nil)

	res, err := s.Run(context.Background(), queue, fleet, routing.NewDijkstra(g))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Records) != 1 || len(res.Unserved) != 0 {
		t.Fatalf("expected 1 record, got %+v", res)
	}
	rec := res.Records[0]
	if rec.VehicleID != "V1" || rec.TravelTime != 4.00 {
		t.Fatalf("expected V1 at 4.00, got %+v", rec)
	}
	if res.Queries != 2 {
		t.Fatalf("expected one query per vehicle, got %d", res.Queries)
	}
}

func TestSchedulerServesByPriorityThenID(t *testing.T) {
	g := testGraph(t)
	fleet := testFleet(t, [2]string{"V1", "A"})
	queue := NewCallQueue(
		model.Call{ID: 7, Location: "B", Type: "Fall", Priority: 2},
		model.Call{ID: 3, Location: "B", Type: "Fall", Priority: 2},
		model.Call{ID: 9, Location: "B", Type: "Cardiac Arrest", Priority: 1},
	)
	s := newTestScheduler(t, nil, nil)

	res, err := s.Run(context.Background(), queue, fleet, routing.NewDijkstra(g))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := make([]int, 0, len(res.Records))
	for _, r := range res.Records {
		got = append(got, r.CallID)
	}
	want := []int{9, 3, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected record order %v got %v", want, got)
		}
	}
}

func TestSchedulerFirstVehicleWinsTies(t *testing.T) {
	g := graph.New()
	if err := g.AddEdge("A", "B", 4); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddEdge("C", "B", 4); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	call := model.Call{ID: 1, Location: "B", Type: "Fall", Priority: 1}
	s := newTestScheduler(t, nil, nil)

	res, err := s.Run(context.Background(), NewCallQueue(call),
		testFleet(t, [2]string{"V1", "A"}, [2]string{"V2", "C"}), routing.NewDijkstra(g))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Records[0].VehicleID != "V1" {
		t.Fatalf("expected first inserted vehicle to win the tie, got %s", res.Records[0].VehicleID)
	}

	res, err = s.Run(context.Background(), NewCallQueue(call),
		testFleet(t, [2]string{"V2", "C"}, [2]string{"V1", "A"}), routing.NewDijkstra(g))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Records[0].VehicleID != "V2" {
		t.Fatalf("tie-break must follow insertion order, got %s", res.Records[0].VehicleID)
	}
}

func TestSchedulerKeepsVehiclesEligible(t *testing.T) {
	g := testGraph(t)
	fleet := testFleet(t, [2]string{"V1", "A"}, [2]string{"V2", "C"})
	queue := NewCallQueue(
		model.Call{ID: 1, Location: "B", Type: "Fall", Priority: 1},
		model.Call{ID: 2, Location: "B", Type: "Fall", Priority: 1},
	)
	s := newTestScheduler(t, nil, nil)

	res, err := s.Run(context.Background(), queue, fleet, routing.NewDijkstra(g))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("expected both calls served, got %d", len(res.Records))
	}
	for _, r := range res.Records {
		if r.VehicleID != "V1" {
			t.Fatalf("dispatched vehicle must stay eligible, got %+v", r)
		}
	}
}

func TestSchedulerSkipsUnservableAndContinues(t *testing.T) {
	g := testGraph(t)
	fleet := testFleet(t, [2]string{"V1", "A"})
	queue := NewCallQueue(
		model.Call{ID: 1, Location: "D", Type: "Fall", Priority: 1},
		model.Call{ID: 2, Location: "B", Type: "Fall", Priority: 2},
	)
	s := newTestScheduler(t, nil, nil)

	res, err := s.Run(context.Background(), queue, fleet, routing.NewDijkstra(g))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Unserved) != 1 || res.Unserved[0].Call.ID != 1 {
		t.Fatalf("expected call 1 unserved, got %+v", res.Unserved)
	}
	if len(res.Records) != 1 || res.Records[0].CallID != 2 {
		t.Fatalf("expected call 2 served after the unservable one, got %+v", res.Records)
	}
}

func TestSchedulerHandlesUnknownLocation(t *testing.T) {
	g := testGraph(t)
	fleet := testFleet(t, [2]string{"V1", "A"})
	queue := NewCallQueue(
		model.Call{ID: 1, Location: "Z", Type: "Fall", Priority: 1},
		model.Call{ID: 2, Location: "B", Type: "Fall", Priority: 2},
	)
	s := newTestScheduler(t, nil, nil)

	res, err := s.Run(context.Background(), queue, fleet, routing.NewDijkstra(g))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Unserved) != 1 || len(res.Records) != 1 {
		t.Fatalf("unknown location must not stop the run, got %+v", res)
	}
}

func TestSchedulerUsesFullPrecisionForSelection(t *testing.T) {
	g := graph.New()
	if err := g.AddEdge("A", "B", 3.3341); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := g.AddEdge("C", "B", 3.3339); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	fleet := testFleet(t, [2]string{"V1", "A"}, [2]string{"V2", "C"})
	queue := NewCallQueue(model.Call{ID: 1, Location: "B", Type: "Fall", Priority: 1})
	s := newTestScheduler(t, nil, nil)

	res, err := s.Run(context.Background(), queue, fleet, routing.NewDijkstra(g))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	rec := res.Records[0]
	// Both distances round to 3.33 but the comparison sees the raw values.
	if rec.VehicleID != "V2" || rec.TravelTime != 3.33 {
		t.Fatalf("expected V2 at 3.33, got %+v", rec)
	}
}

func TestSchedulerContextCancelled(t *testing.T) {
	g := testGraph(t)
	fleet := testFleet(t, [2]string{"V1", "A"})
	queue := NewCallQueue(model.Call{ID: 1, Location: "B", Type: "Fall", Priority: 1})
	s := newTestScheduler(t, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Run(ctx, queue, fleet, routing.NewDijkstra(g))
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(res.Records) != 0 {
		t.Fatalf("cancelled run must not serve calls, got %+v", res.Records)
	}
}

type captureSink struct {
	dispatched int
	unserved   int
	runs       int
	fleetSizes int
	queries    int
}

func (c *captureSink) RecordDispatch(r []metrics.DispatchResult) error {
	c.dispatched += len(r)
	return nil
}

func (c *captureSink) RecordUnserved(metrics.UnservedEvent) error {
	c.unserved++
	return nil
}

func (c *captureSink) RecordRun(metrics.RunEvent) error {
	c.runs++
	return nil
}

func (c *captureSink) RecordQueryLatency(l []metrics.QueryLatency) error {
	c.queries += len(l)
	return nil
}

func (c *captureSink) RecordFleetSize(int) error {
	c.fleetSizes++
	return nil
}

func TestSchedulerRecordsMetrics(t *testing.T) {
	g := testGraph(t)
	fleet := testFleet(t, [2]string{"V1", "A"})
	queue := NewCallQueue(
		model.Call{ID: 1, Location: "B", Type: "Fall", Priority: 1},
		model.Call{ID: 2, Location: "D", Type: "Fall", Priority: 2},
	)
	sink := &captureSink{}
	s := newTestScheduler(t, sink, nil)

	if _, err := s.Run(context.Background(), queue, fleet, routing.NewDijkstra(g)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if sink.dispatched != 1 || sink.unserved != 1 || sink.runs != 1 {
		t.Fatalf("unexpected sink counts: %+v", sink)
	}
	if sink.fleetSizes != 1 || sink.queries != 2 {
		t.Fatalf("expected fleet size and per-vehicle query latencies, got %+v", sink)
	}
}

func TestSchedulerPublishesEvents(t *testing.T) {
	g := testGraph(t)
	fleet := testFleet(t, [2]string{"V1", "A"})
	queue := NewCallQueue(model.Call{ID: 1, Location: "B", Type: "Fall", Priority: 1})
	bus := eventbus.New()
	ch := bus.Subscribe()
	s := newTestScheduler(t, nil, bus)

	if _, err := s.Run(context.Background(), queue, fleet, routing.NewDijkstra(g)); err != nil {
		t.Fatalf("run: %v", err)
	}
	var calls, dispatches, runs int
	for done := false; !done; {
		select {
		case ev := <-ch:
			switch ev.(type) {
			case events.CallEvent:
				calls++
			case events.DispatchEvent:
				dispatches++
			case events.RunEvent:
				runs++
			}
		default:
			done = true
		}
	}
	if calls != 1 || dispatches != 1 || runs != 1 {
		t.Fatalf("expected call/dispatch/run events, got %d/%d/%d", calls, dispatches, runs)
	}
}

func TestSchedulerPersistsRecords(t *testing.T) {
	g := testGraph(t)
	fleet := testFleet(t, [2]string{"V1", "A"})
	queue := NewCallQueue(
		model.Call{ID: 1, Location: "B", Type: "Fall", Priority: 1},
		model.Call{ID: 2, Location: "D", Type: "Fall", Priority: 2},
	)
	store, err := logging.NewJSONLStore(filepath.Join(t.TempDir(), "records.jsonl"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	s := newTestScheduler(t, nil, nil)
	s.SetRecordStore(store)

	if _, err := s.Run(context.Background(), queue, fleet, routing.NewDijkstra(g)); err != nil {
		t.Fatalf("run: %v", err)
	}
	entries, err := store.Query(context.Background(), logging.LogQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 persisted entries, got %d", len(entries))
	}
	var unserved int
	for _, e := range entries {
		if e.Unserved {
			unserved++
		}
	}
	if unserved != 1 {
		t.Fatalf("expected one unserved entry, got %d", unserved)
	}
}

func TestSchedulerTracksFleetStatus(t *testing.T) {
	g := testGraph(t)
	fleet := testFleet(t, [2]string{"V1", "A"}, [2]string{"V2", "C"})
	queue := NewCallQueue(
		model.Call{ID: 1, Location: "B", Type: "Cardiac Arrest", Priority: 1},
		model.Call{ID: 2, Location: "X", Type: "Fall", Priority: 5},
	)
	status := fleetstatus.NewMemoryStore()
	s := newTestScheduler(t, nil, nil)
	s.SetStatusStore(status)

	if _, err := s.Run(context.Background(), queue, fleet, routing.NewDijkstra(g)); err != nil {
		t.Fatalf("run: %v", err)
	}
	all := status.List(fleetstatus.Filter{})
	if len(all) != 2 {
		t.Fatalf("expected both vehicles tracked, got %#v", all)
	}
	v1 := all[0]
	if v1.VehicleID != "V1" || v1.Assignments != 2 {
		t.Fatalf("V1 should have taken both calls: %+v", v1)
	}
	if v1.TotalTravelTime != 5 {
		t.Errorf("V1 total travel time = %v, want 5", v1.TotalTravelTime)
	}
	if v1.LastAssignment.CallID != 2 {
		t.Errorf("last assignment = %+v", v1.LastAssignment)
	}
	if v2 := all[1]; v2.Assignments != 0 || v2.Location != "C" {
		t.Errorf("V2 should be seeded idle: %+v", v2)
	}
}
