// Package infra contains technical adapters: CSV ingestion, the MQTT feed
// publisher, metrics exporters, traffic-delay clients and their auth. These
// packages should depend only on the interfaces defined in the core packages.
package infra
