package metrics

// Package metrics defines interfaces and implementations for collecting
// dispatch metrics. Sinks like PromSink and InfluxSink record events such
// as completed assignments or unserved calls and can be combined with
// NewMultiSink. The factory helpers return a MultiSink automatically when
// multiple sinks are configured.
