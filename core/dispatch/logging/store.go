// Package logging persists dispatch decisions so completed runs can be
// queried, exported and aggregated after the fact. Backends exist for plain
// JSONL files, size-rotated JSONL files and SQLite.
package logging

import (
	"context"
	"time"

	"github.com/kilianp07/dispatchsim/core/model"
)

// LogRecord captures one dispatch decision. Unserved entries carry the call
// information in Record with an empty VehicleID and a Reason.
type LogRecord struct {
	Timestamp time.Time            `json:"timestamp"`
	Record    model.DispatchRecord `json:"record"`
	Priority  int                  `json:"priority"`
	Queries   int                  `json:"queries"`
	Unserved  bool                 `json:"unserved,omitempty"`
	Reason    string               `json:"reason,omitempty"`
}

// LogQuery defines filters for retrieving records.
type LogQuery struct {
	Start     time.Time
	End       time.Time
	VehicleID string
	CallType  string
}

// matches reports whether rec passes every filter of q. Time filters are
// inclusive.
func (q LogQuery) matches(rec LogRecord) bool {
	if !q.Start.IsZero() && rec.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && rec.Timestamp.After(q.End) {
		return false
	}
	if q.VehicleID != "" && rec.Record.VehicleID != q.VehicleID {
		return false
	}
	if q.CallType != "" && rec.Record.CallType != q.CallType {
		return false
	}
	return true
}

// RecordStore persists LogRecords and supports querying.
type RecordStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}

// NopStore discards every record. It backs runs that do not configure
// persistence.
type NopStore struct{}

func (NopStore) Append(context.Context, LogRecord) error { return nil }

func (NopStore) Query(context.Context, LogQuery) ([]LogRecord, error) { return nil, nil }

func (NopStore) Close() error { return nil }
