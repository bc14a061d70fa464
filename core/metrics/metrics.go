package metrics

import (
	"time"

	"github.com/kilianp07/dispatchsim/core/model"
)

// DispatchResult represents a completed assignment to be recorded.
type DispatchResult struct {
	Record    model.DispatchRecord
	Priority  int
	Queries   int
	Selection time.Duration
	Time      time.Time
}

// MetricsSink records dispatch results for observability purposes.
type MetricsSink interface {
	RecordDispatch(results []DispatchResult) error
}

// UnservedEvent captures a call no vehicle could reach.
type UnservedEvent struct {
	Call   model.Call
	Reason string
	Time   time.Time
}

// UnservedRecorder records unserved calls.
type UnservedRecorder interface {
	RecordUnserved(ev UnservedEvent) error
}

// RunEvent summarizes a finished dispatch run.
type RunEvent struct {
	Strategy   string
	Calls      int
	Dispatched int
	Unserved   int
	Queries    int
	TableBuild time.Duration
	Elapsed    time.Duration
	Time       time.Time
}

// RunRecorder records run summaries.
type RunRecorder interface {
	RecordRun(ev RunEvent) error
}

// QueryLatency represents the cost of a single travel-time query.
type QueryLatency struct {
	Strategy string
	CallType string
	Latency  time.Duration
}

// QueryRecorder is implemented by sinks able to record query latencies.
type QueryRecorder interface {
	RecordQueryLatency(latencies []QueryLatency) error
}

// FleetSizeRecorder records the number of vehicles in the active fleet.
type FleetSizeRecorder interface {
	RecordFleetSize(size int) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordDispatch([]DispatchResult) error { return nil }

func (NopSink) RecordUnserved(UnservedEvent) error      { return nil }
func (NopSink) RecordRun(RunEvent) error                { return nil }
func (NopSink) RecordQueryLatency([]QueryLatency) error { return nil }
func (NopSink) RecordFleetSize(int) error               { return nil }
