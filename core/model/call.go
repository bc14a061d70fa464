package model

import "fmt"

// DefaultPriority is assigned to call types missing from the priority table.
// Lower values are served first, so unknown types sort last.
const DefaultPriority = 99

// Call represents one incoming emergency call. Priority is derived from the
// call type before the call enters the queue; the ID doubles as the
// tie-breaker between calls of equal priority.
type Call struct {
	ID       int
	Location string
	Type     string
	Priority int
}

// Validate checks that the call has a routable location.
func (c Call) Validate() error {
	if c.Location == "" {
		return fmt.Errorf("call %d: location must not be empty", c.ID)
	}
	return nil
}

// Before reports whether c is served ahead of other: lower priority first,
// then lower call ID.
func (c Call) Before(other Call) bool {
	if c.Priority != other.Priority {
		return c.Priority < other.Priority
	}
	return c.ID < other.ID
}

// PriorityTable maps call types to integer priorities.
type PriorityTable map[string]int

// PriorityFor resolves the priority for the given call type, falling back to
// DefaultPriority for unknown types.
func (t PriorityTable) PriorityFor(callType string) int {
	if p, ok := t[callType]; ok {
		return p
	}
	return DefaultPriority
}
