package app

import (
	"context"

	"github.com/kilianp07/dispatchsim/core/events"
	"github.com/kilianp07/dispatchsim/infra/logger"
	"github.com/kilianp07/dispatchsim/internal/eventbus"
)

// progressEvery controls how often bulk progress is reported.
const progressEvery = 100

// startProgress logs a line every progressEvery resolved calls and a closing
// summary when the run event arrives. It returns once the bus closes or the
// context is cancelled.
func startProgress(ctx context.Context, bus eventbus.EventBus, total int, log logger.Logger) {
	if bus == nil || log == nil {
		return
	}
	ch := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(ch)
		done := 0
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				switch ev := ev.(type) {
				case events.DispatchEvent:
					done++
					if done%progressEvery == 0 {
						log.Infof("processed %d/%d calls", done, total)
					}
				case events.UnservedEvent:
					done++
					if done%progressEvery == 0 {
						log.Infof("processed %d/%d calls", done, total)
					}
				case events.RunEvent:
					log.Infof("run %s: %d dispatched, %d unserved, %d queries in %s",
						ev.Strategy, ev.Dispatched, ev.Unserved, ev.Queries, ev.Elapsed)
				}
			}
		}
	}()
}
