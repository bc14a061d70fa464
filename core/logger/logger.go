package logger

// Logger exposes logging methods for common severity levels. Core packages
// receive one per subsystem (scheduler, ingest, feed) with a component field
// bound by the implementation.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
