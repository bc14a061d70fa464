package config

// SentryConfig defines settings for Sentry error monitoring. Reporting stays
// off until a DSN is configured.
type SentryConfig struct {
	DSN              string  `json:"dsn"`
	Environment      string  `json:"environment"`
	TracesSampleRate float64 `json:"traces_sample_rate"`
	Release          string  `json:"release"`
}

// Enabled reports whether error reporting is configured.
func (c SentryConfig) Enabled() bool { return c.DSN != "" }
