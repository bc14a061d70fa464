package metrics

// MultiSink fans recorded events out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordDispatch forwards the results to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordDispatch(res []DispatchResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordDispatch(res); err != nil {
			return err
		}
	}
	return nil
}

// RecordUnserved forwards unserved calls to capable sinks.
func (m *MultiSink) RecordUnserved(ev UnservedEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(UnservedRecorder); ok {
			if err := rec.RecordUnserved(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordRun forwards run summaries to capable sinks.
func (m *MultiSink) RecordRun(ev RunEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RunRecorder); ok {
			if err := rec.RecordRun(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordQueryLatency forwards query latencies to capable sinks.
func (m *MultiSink) RecordQueryLatency(latencies []QueryLatency) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(QueryRecorder); ok {
			if err := rec.RecordQueryLatency(latencies); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordFleetSize forwards the fleet size to capable sinks.
func (m *MultiSink) RecordFleetSize(size int) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(FleetSizeRecorder); ok {
			if err := rec.RecordFleetSize(size); err != nil {
				return err
			}
		}
	}
	return nil
}
