package dispatch

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kilianp07/dispatchsim/core/dispatch/logging"
	"github.com/kilianp07/dispatchsim/core/events"
	"github.com/kilianp07/dispatchsim/core/fleetstatus"
	"github.com/kilianp07/dispatchsim/core/logger"
	"github.com/kilianp07/dispatchsim/core/metrics"
	"github.com/kilianp07/dispatchsim/core/model"
	"github.com/kilianp07/dispatchsim/core/routing"
	"github.com/kilianp07/dispatchsim/internal/eventbus"
)

// Result is the outcome of a dispatch run.
type Result struct {
	Records  []model.DispatchRecord
	Unserved []UnservedCall
	Queries  int
	Elapsed  time.Duration
}

// UnservedCall reports a call that could not be served and why.
type UnservedCall struct {
	Call   model.Call
	Reason string
}

// Scheduler drains a call queue against a fixed fleet snapshot, assigning
// every call to the vehicle with the strictly lowest travel time. The fleet
// is never mutated: dispatching a vehicle does not remove it from
// consideration for later calls.
type Scheduler struct {
	strategy   string
	logger     logger.Logger
	metrics    metrics.MetricsSink
	bus        eventbus.EventBus
	store      logging.RecordStore
	status     fleetstatus.Store
	tableBuild time.Duration
}

// NewScheduler creates a scheduler. strategy names the routing strategy in
// run summaries and has no influence on behavior. A nil sink falls back to
// metrics.NopSink.
func NewScheduler(strategy string, log logger.Logger, sink metrics.MetricsSink, bus eventbus.EventBus) (*Scheduler, error) {
	if log == nil {
		return nil, fmt.Errorf("dispatch: nil logger provided to NewScheduler")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Scheduler{strategy: strategy, logger: log, metrics: sink, bus: bus}, nil
}

// SetRecordStore configures the store used to persist dispatch records.
func (s *Scheduler) SetRecordStore(store logging.RecordStore) { s.store = store }

// SetStatusStore configures the store tracking per-vehicle tallies.
func (s *Scheduler) SetStatusStore(store fleetstatus.Store) { s.status = store }

// SetTableBuild records the time spent precomputing the routing table so the
// run summary can report it. Zero for on-demand strategies.
func (s *Scheduler) SetTableBuild(d time.Duration) { s.tableBuild = d }

// Run drains queue against the fleet snapshot, using est for travel times.
// Calls are served in (priority, id) order; for each call every vehicle is
// priced once and the first vehicle with the lowest finite travel time wins.
// Unservable calls are reported and skipped without stopping the run. The
// context is checked between calls so a cancelled run returns the partial
// result together with the context error.
func (s *Scheduler) Run(ctx context.Context, queue *CallQueue, fleet *model.Fleet, est routing.Estimator) (Result, error) {
	start := time.Now()
	vehicles := fleet.Vehicles()
	var res Result

	s.logger.Infof("dispatching %d calls across %d vehicles", queue.Len(), len(vehicles))
	if fr, ok := s.metrics.(metrics.FleetSizeRecorder); ok {
		if err := fr.RecordFleetSize(len(vehicles)); err != nil {
			s.logger.Errorf("fleet size metrics error: %v", err)
		}
	}
	queueDepth.Set(float64(queue.Len()))
	if s.status != nil {
		for _, v := range vehicles {
			s.status.Set(fleetstatus.Status{VehicleID: v.ID, Location: v.Location})
		}
	}

	for {
		select {
		case <-ctx.Done():
			res.Elapsed = time.Since(start)
			return res, ctx.Err()
		default:
		}
		call, ok := queue.Pop()
		if !ok {
			break
		}
		queueDepth.Set(float64(queue.Len()))
		if s.bus != nil {
			s.bus.Publish(events.CallEvent{Call: call})
		}
		s.serve(ctx, call, vehicles, est, &res)
	}

	res.Elapsed = time.Since(start)
	runDuration.Observe(res.Elapsed.Seconds())
	s.logger.Infof("dispatch complete: %d served, %d unserved, %d travel time queries in %s",
		len(res.Records), len(res.Unserved), res.Queries, res.Elapsed)

	run := metrics.RunEvent{
		Strategy:   s.strategy,
		Calls:      len(res.Records) + len(res.Unserved),
		Dispatched: len(res.Records),
		Unserved:   len(res.Unserved),
		Queries:    res.Queries,
		TableBuild: s.tableBuild,
		Elapsed:    res.Elapsed,
		Time:       time.Now(),
	}
	if rr, ok := s.metrics.(metrics.RunRecorder); ok {
		if err := rr.RecordRun(run); err != nil {
			s.logger.Errorf("run metrics error: %v", err)
		}
	}
	if s.bus != nil {
		s.bus.Publish(events.RunEvent{
			Strategy:   run.Strategy,
			Calls:      run.Calls,
			Dispatched: run.Dispatched,
			Unserved:   run.Unserved,
			Queries:    run.Queries,
			Elapsed:    run.Elapsed,
		})
	}
	return res, nil
}

// serve prices every vehicle for the call and records the winner. Vehicles
// the estimator cannot price count as unreachable for this call only.
func (s *Scheduler) serve(ctx context.Context, call model.Call, vehicles []model.Vehicle, est routing.Estimator, res *Result) {
	selStart := time.Now()
	best := math.Inf(1)
	bestID := ""
	queries := 0
	var lats []metrics.QueryLatency
	qr, wantLats := s.metrics.(metrics.QueryRecorder)

	for _, v := range vehicles {
		q0 := time.Now()
		d, err := est.TravelTime(v.Location, call.Location)
		qd := time.Since(q0)
		queryLatency.Observe(qd.Seconds())
		if wantLats {
			lats = append(lats, metrics.QueryLatency{Strategy: s.strategy, CallType: call.Type, Latency: qd})
		}
		queries++
		if err != nil {
			s.logger.Debugf("vehicle %s cannot price call %d: %v", v.ID, call.ID, err)
			continue
		}
		if d < best {
			best = d
			bestID = v.ID
		}
	}
	res.Queries += queries
	if wantLats {
		if err := qr.RecordQueryLatency(lats); err != nil {
			s.logger.Errorf("query metrics error: %v", err)
		}
	}

	if routing.Unreachable(best) {
		s.markUnserved(ctx, call, queries, res)
		return
	}

	rec := model.DispatchRecord{
		CallID:     call.ID,
		CallType:   call.Type,
		Location:   call.Location,
		VehicleID:  bestID,
		TravelTime: model.RoundTravelTime(best),
	}
	res.Records = append(res.Records, rec)
	s.logger.Debugf("call %d (%s) -> vehicle %s, travel time %.2f", call.ID, call.Type, bestID, rec.TravelTime)
	callsDispatched.WithLabelValues(call.Type).Inc()

	sel := time.Since(selStart)
	dr := metrics.DispatchResult{Record: rec, Priority: call.Priority, Queries: queries, Selection: sel, Time: time.Now()}
	if err := s.metrics.RecordDispatch([]metrics.DispatchResult{dr}); err != nil {
		s.logger.Errorf("dispatch metrics error: %v", err)
	}
	if s.bus != nil {
		s.bus.Publish(events.DispatchEvent{Record: rec, Queries: queries, Latency: sel})
	}
	if s.status != nil {
		s.status.RecordAssignment(bestID, fleetstatus.Assignment{
			CallID:     call.ID,
			CallType:   call.Type,
			Location:   call.Location,
			TravelTime: rec.TravelTime,
			Timestamp:  time.Now(),
		})
	}
	if s.store != nil {
		entry := logging.LogRecord{Timestamp: time.Now(), Record: rec, Priority: call.Priority, Queries: queries}
		if err := s.store.Append(ctx, entry); err != nil {
			s.logger.Errorf("record store error: %v", err)
		}
	}
}

// markUnserved reports a call without a reachable vehicle and moves on.
func (s *Scheduler) markUnserved(ctx context.Context, call model.Call, queries int, res *Result) {
	const reason = "no vehicle with finite travel time"
	res.Unserved = append(res.Unserved, UnservedCall{Call: call, Reason: reason})
	s.logger.Warnf("call %d (%s) at %s unserved: %s", call.ID, call.Type, call.Location, reason)
	callsUnserved.WithLabelValues(call.Type).Inc()

	if ur, ok := s.metrics.(metrics.UnservedRecorder); ok {
		ev := metrics.UnservedEvent{Call: call, Reason: reason, Time: time.Now()}
		if err := ur.RecordUnserved(ev); err != nil {
			s.logger.Errorf("unserved metrics error: %v", err)
		}
	}
	if s.bus != nil {
		s.bus.Publish(events.UnservedEvent{Call: call, Reason: reason})
	}
	if s.store != nil {
		entry := logging.LogRecord{
			Timestamp: time.Now(),
			Record:    model.DispatchRecord{CallID: call.ID, CallType: call.Type, Location: call.Location},
			Priority:  call.Priority,
			Queries:   queries,
			Unserved:  true,
			Reason:    reason,
		}
		if err := s.store.Append(ctx, entry); err != nil {
			s.logger.Errorf("record store error: %v", err)
		}
	}
}

// Close releases resources held by the scheduler.
func (s *Scheduler) Close() error {
	if s.bus != nil {
		s.bus.Close()
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
