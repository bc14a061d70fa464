package metrics

import "testing"

// TestMultiSink ensures events are forwarded to all sinks.

type recordSink struct {
	count int
}

func (r *recordSink) RecordDispatch([]DispatchResult) error {
	r.count++
	return nil
}

func (r *recordSink) RecordUnserved(UnservedEvent) error {
	r.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordDispatch(nil); err != nil {
		t.Fatalf("record dispatch: %v", err)
	}
	if err := m.RecordUnserved(UnservedEvent{}); err != nil {
		t.Fatalf("record unserved: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("results not forwarded")
	}
}

// plainSink implements only the base interface; optional recorders must be
// skipped without error.
type plainSink struct{ count int }

func (p *plainSink) RecordDispatch([]DispatchResult) error {
	p.count++
	return nil
}

func TestMultiSinkSkipsIncapableSinks(t *testing.T) {
	p := &plainSink{}
	m := NewMultiSink(p)
	if err := m.RecordRun(RunEvent{}); err != nil {
		t.Fatalf("record run: %v", err)
	}
	if err := m.RecordQueryLatency(nil); err != nil {
		t.Fatalf("record latency: %v", err)
	}
	if p.count != 0 {
		t.Fatalf("optional recorders must not hit base sink")
	}
}
