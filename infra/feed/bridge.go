package feed

import (
	"context"

	"github.com/kilianp07/dispatchsim/core/events"
	corefeed "github.com/kilianp07/dispatchsim/core/feed"
	"github.com/kilianp07/dispatchsim/core/logger"
	"github.com/kilianp07/dispatchsim/internal/eventbus"
)

// StartBridge subscribes to the event bus and forwards dispatch outcomes to
// the publisher. It stops when the context is canceled. The scheduler never
// blocks on the feed: the bus drops events when the bridge falls behind.
func StartBridge(ctx context.Context, bus eventbus.EventBus, pub corefeed.Publisher, log logger.Logger) {
	if bus == nil || pub == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.DispatchEvent:
					if _, err := pub.PublishRecord(e.Record); err != nil {
						log.Errorf("feed publish record: %v", err)
					}
				case events.UnservedEvent:
					if _, err := pub.PublishUnserved(e.Call, e.Reason); err != nil {
						log.Errorf("feed publish unserved: %v", err)
					}
				}
			}
		}
	}()
}
