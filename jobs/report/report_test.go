package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kilianp07/dispatchsim/core/dispatch/logging"
	"github.com/kilianp07/dispatchsim/core/model"
)

func seedStore(t *testing.T) logging.RecordStore {
	t.Helper()
	store, err := logging.NewJSONLStore(filepath.Join(t.TempDir(), "records.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	entries := []logging.LogRecord{
		{Timestamp: time.Now(), Record: model.DispatchRecord{CallID: 1, CallType: "Fall", Location: "B", VehicleID: "V1", TravelTime: 2}},
		{Timestamp: time.Now(), Record: model.DispatchRecord{CallID: 2, CallType: "Fall", Location: "C", VehicleID: "V1", TravelTime: 4}},
		{Timestamp: time.Now(), Record: model.DispatchRecord{CallID: 3, CallType: "Cardiac Arrest", Location: "A", VehicleID: "V2", TravelTime: 1.5}},
		{Timestamp: time.Now(), Record: model.DispatchRecord{CallID: 4, CallType: "Fall", Location: "Z"}, Unserved: true, Reason: "no vehicle with finite travel time"},
	}
	for _, e := range entries {
		if err := store.Append(ctx, e); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func TestBuild(t *testing.T) {
	store := seedStore(t)
	sum, err := Build(context.Background(), store, logging.LogQuery{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sum.Calls != 4 || sum.Dispatched != 3 || sum.Unserved != 1 {
		t.Fatalf("unexpected totals %+v", sum)
	}
	if len(sum.Vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(sum.Vehicles))
	}
	v1 := sum.Vehicles[0]
	if v1.VehicleID != "V1" || v1.Dispatched != 2 || v1.TotalTravel != 6 || v1.MeanTravel != 3 {
		t.Fatalf("unexpected V1 kpi %+v", v1)
	}
	if len(sum.Types) != 2 {
		t.Fatalf("expected 2 call types, got %d", len(sum.Types))
	}
	fall := sum.Types[1]
	if fall.CallType != "Fall" || fall.Dispatched != 2 || fall.Unserved != 1 || fall.MeanTravel != 3 {
		t.Fatalf("unexpected Fall kpi %+v", fall)
	}
}

func TestBuildFiltered(t *testing.T) {
	store := seedStore(t)
	sum, err := Build(context.Background(), store, logging.LogQuery{VehicleID: "V2"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sum.Calls != 1 || sum.Dispatched != 1 {
		t.Fatalf("unexpected totals %+v", sum)
	}
	if sum.Vehicles[0].VehicleID != "V2" || sum.Vehicles[0].MeanTravel != 1.5 {
		t.Fatalf("unexpected kpi %+v", sum.Vehicles[0])
	}
}
