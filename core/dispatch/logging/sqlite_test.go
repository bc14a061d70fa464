package logging

import (
	"context"
	"testing"
	"time"
)

func TestSQLiteStore_PersistQuery(t *testing.T) {
	store, err := NewSQLiteStore("file:records_test.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()
	if err := store.Append(context.Background(), testRecord(1, "A1")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(context.Background(), testRecord(2, "A2")); err != nil {
		t.Fatalf("append: %v", err)
	}
	out, err := store.Query(context.Background(), LogQuery{VehicleID: "A1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].Record.CallID != 1 {
		t.Fatalf("expected call 1, got %d", out[0].Record.CallID)
	}
}

func TestSQLiteStore_FilterCallType(t *testing.T) {
	store, err := NewSQLiteStore("file:records_type_test.db?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()
	rec := testRecord(1, "A1")
	_ = store.Append(context.Background(), rec)
	other := testRecord(2, "A2")
	other.Record.CallType = "Structure Fire"
	other.Timestamp = time.Now()
	_ = store.Append(context.Background(), other)
	out, err := store.Query(context.Background(), LogQuery{CallType: "Structure Fire"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 1 || out[0].Record.CallID != 2 {
		t.Fatalf("expected fire record, got %+v", out)
	}
}
