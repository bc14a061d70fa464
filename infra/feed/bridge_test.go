package feed

import (
	"context"
	"testing"
	"time"

	"github.com/kilianp07/dispatchsim/core/events"
	"github.com/kilianp07/dispatchsim/core/model"
	"github.com/kilianp07/dispatchsim/infra/logger"
	"github.com/kilianp07/dispatchsim/internal/eventbus"
)

func TestBridgeForwardsEvents(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	pub := NewMockPublisher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartBridge(ctx, bus, pub, logger.NopLogger{})

	rec := model.DispatchRecord{CallID: 1, CallType: "Cardiac Arrest", Location: "B", VehicleID: "V1", TravelTime: 4}
	bus.Publish(events.DispatchEvent{Record: rec})
	bus.Publish(events.UnservedEvent{Call: model.Call{ID: 2, Location: "Q", Type: "Fall"}, Reason: "no vehicle with finite travel time"})
	// CallEvents are not part of the feed
	bus.Publish(events.CallEvent{Call: model.Call{ID: 3, Location: "B"}})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if pub.RecordCount() == 1 && pub.UnservedCount() == 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if pub.RecordCount() != 1 || pub.UnservedCount() != 1 {
		t.Fatalf("bridge forwarded %d records, %d unserved", pub.RecordCount(), pub.UnservedCount())
	}
	if pub.Records[0] != rec {
		t.Errorf("record = %+v", pub.Records[0])
	}
	if pub.Unserved[0].Call.ID != 2 {
		t.Errorf("unserved = %+v", pub.Unserved[0])
	}
}

func TestBridgeNilGuards(t *testing.T) {
	// must not panic
	StartBridge(context.Background(), nil, NewMockPublisher(), logger.NopLogger{})
	bus := eventbus.New()
	defer bus.Close()
	StartBridge(context.Background(), bus, nil, logger.NopLogger{})
}
