package events

import "github.com/kilianp07/dispatchsim/core/model"

// CallEvent is published when a call is dequeued for assignment.
type CallEvent struct {
	Call model.Call
}

// UnservedEvent is published when no vehicle can reach a call. Reason is a
// short human-readable explanation, e.g. "no finite travel time".
type UnservedEvent struct {
	Call   model.Call
	Reason string
}
