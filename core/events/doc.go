// Package events defines the dispatch related events emitted on the event bus.
//
// Available event types:
//   - CallEvent: a call was dequeued for assignment
//   - DispatchEvent: a vehicle was selected for a call
//   - UnservedEvent: no vehicle could reach a call
//   - RunEvent: a dispatch run finished
package events
