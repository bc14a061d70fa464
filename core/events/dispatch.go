package events

import (
	"time"

	"github.com/kilianp07/dispatchsim/core/model"
)

// DispatchEvent is published for each completed assignment.
type DispatchEvent struct {
	Record  model.DispatchRecord
	Queries int
	Latency time.Duration
}

// RunEvent summarizes a finished dispatch run.
type RunEvent struct {
	Strategy   string
	Calls      int
	Dispatched int
	Unserved   int
	Queries    int
	Elapsed    time.Duration
}
