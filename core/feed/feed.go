// Package feed defines the contract for pushing dispatch activity to an
// external live feed while a run is in progress.
package feed

import "github.com/kilianp07/dispatchsim/core/model"

// Publisher pushes dispatch outcomes to subscribers outside the process.
// Both methods return the message identifier used on the wire so callers
// can correlate downstream.
type Publisher interface {
	// PublishRecord announces an assignment.
	PublishRecord(rec model.DispatchRecord) (messageID string, err error)

	// PublishUnserved announces a call no vehicle could reach.
	PublishUnserved(call model.Call, reason string) (messageID string, err error)

	// Disconnect gracefully closes the feed.
	Disconnect()
}
