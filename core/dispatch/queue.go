package dispatch

import (
	"container/heap"

	"github.com/kilianp07/dispatchsim/core/model"
)

// CallQueue orders pending calls by (priority, call ID) ascending. The ID
// tie-break makes equal-priority calls come out in submission order.
type CallQueue struct {
	h callHeap
}

// NewCallQueue returns a queue seeded with the given calls.
func NewCallQueue(calls ...model.Call) *CallQueue {
	q := &CallQueue{h: make(callHeap, 0, len(calls))}
	q.h = append(q.h, calls...)
	heap.Init(&q.h)
	return q
}

// Push adds a call to the queue.
func (q *CallQueue) Push(c model.Call) { heap.Push(&q.h, c) }

// Pop removes and returns the most urgent call. ok is false when the queue
// is empty.
func (q *CallQueue) Pop() (model.Call, bool) {
	if len(q.h) == 0 {
		return model.Call{}, false
	}
	return heap.Pop(&q.h).(model.Call), true
}

// Len returns the number of queued calls.
func (q *CallQueue) Len() int { return len(q.h) }

type callHeap []model.Call

func (h callHeap) Len() int           { return len(h) }
func (h callHeap) Less(i, j int) bool { return h[i].Before(h[j]) }
func (h callHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *callHeap) Push(x any) { *h = append(*h, x.(model.Call)) }

func (h *callHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
