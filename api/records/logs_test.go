package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kilianp07/dispatchsim/core/dispatch/logging"
	"github.com/kilianp07/dispatchsim/core/model"
)

type memStore struct{ recs []logging.LogRecord }

func (m *memStore) Append(ctx context.Context, r logging.LogRecord) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memStore) Query(ctx context.Context, q logging.LogQuery) ([]logging.LogRecord, error) {
	var res []logging.LogRecord
	for _, r := range m.recs {
		if q.VehicleID != "" && r.Record.VehicleID != q.VehicleID {
			continue
		}
		if q.CallType != "" && r.Record.CallType != q.CallType {
			continue
		}
		res = append(res, r)
	}
	return res, nil
}

func (m *memStore) Close() error { return nil }

func TestLogHandler_AuthAndFilters(t *testing.T) {
	store := &memStore{}
	if err := store.Append(context.Background(), logging.LogRecord{
		Timestamp: time.Now(),
		Record:    model.DispatchRecord{CallID: 1, CallType: "Cardiac Arrest", Location: "B", VehicleID: "V1", TravelTime: 4},
		Priority:  1,
		Queries:   2,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(context.Background(), logging.LogRecord{
		Timestamp: time.Now(),
		Record:    model.DispatchRecord{CallID: 2, CallType: "Fall", Location: "C", VehicleID: "V2", TravelTime: 1},
	}); err != nil {
		t.Fatalf("append: %v", err)
	}
	h := NewLogHandler(store, "tok")

	req := httptest.NewRequest("GET", "/api/records?vehicle_id=V1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []logging.LogRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].Record.VehicleID != "V1" {
		t.Fatalf("expected V1's record, got %+v", out)
	}

	// unauthorized
	req = httptest.NewRequest("GET", "/api/records", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestLogHandler_CallTypeFilter(t *testing.T) {
	store := &memStore{}
	_ = store.Append(context.Background(), logging.LogRecord{Record: model.DispatchRecord{CallID: 1, CallType: "Fall"}})
	_ = store.Append(context.Background(), logging.LogRecord{Record: model.DispatchRecord{CallID: 2, CallType: "Structure Fire"}})
	h := NewLogHandler(store, "")

	req := httptest.NewRequest("GET", "/api/records?call_type=Structure+Fire", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []logging.LogRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].Record.CallID != 2 {
		t.Fatalf("filter failed: %+v", out)
	}
}
