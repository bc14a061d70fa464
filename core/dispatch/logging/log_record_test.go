package logging

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/kilianp07/dispatchsim/core/factory"
	"github.com/kilianp07/dispatchsim/core/model"
)

func TestLogRecord_JSON(t *testing.T) {
	rec := LogRecord{
		Timestamp: time.Unix(0, 0),
		Record: model.DispatchRecord{
			CallID:     7,
			CallType:   "Fall",
			Location:   "C",
			VehicleID:  "A3",
			TravelTime: 2.5,
		},
		Priority: 3,
		Queries:  4,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"timestamp", "record", "priority", "queries"} {
		if _, ok := m[k]; !ok {
			t.Errorf("missing key %s", k)
		}
	}
	if _, ok := m["unserved"]; ok {
		t.Errorf("unserved must be omitted when false")
	}
}

func TestStoreFactory(t *testing.T) {
	store, err := NewStore(factory.ModuleConfig{
		Type: "jsonl",
		Conf: map[string]any{"path": t.TempDir() + "/out.jsonl"},
	})
	if err != nil {
		t.Fatalf("jsonl: %v", err)
	}
	if _, ok := store.(*JSONLStore); !ok {
		t.Fatalf("expected JSONLStore, got %T", store)
	}
	if _, err := NewStore(factory.ModuleConfig{Type: "bolt"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	store, err = NewStore(factory.ModuleConfig{})
	if err != nil {
		t.Fatalf("empty type: %v", err)
	}
	if _, ok := store.(NopStore); !ok {
		t.Fatalf("expected NopStore, got %T", store)
	}
}
