// Package fleetstatus tracks what each vehicle has been doing during a run:
// where it is staged, how many calls it took and what it served last. The
// fleet API reads it; the scheduler writes it.
package fleetstatus

import (
	"sort"
	"sync"
	"time"
)

// Assignment summarizes one call handed to a vehicle.
type Assignment struct {
	CallID     int       `json:"call_id"`
	CallType   string    `json:"call_type"`
	Location   string    `json:"location"`
	TravelTime float64   `json:"travel_time"`
	Timestamp  time.Time `json:"timestamp"`
}

// Status captures the current known state of a vehicle.
type Status struct {
	VehicleID       string     `json:"vehicle_id"`
	Location        string     `json:"location"`
	Assignments     int        `json:"assignments"`
	TotalTravelTime float64    `json:"total_travel_time"`
	LastAssignment  Assignment `json:"last_assignment"`
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	Location string
	CallType string
}

type Store interface {
	Set(Status)
	List(Filter) []Status
	RecordAssignment(id string, a Assignment)
}

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Status
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]Status{}}
}

func (s *MemoryStore) Set(st Status) {
	s.mu.Lock()
	s.data[st.VehicleID] = st
	s.mu.Unlock()
}

// RecordAssignment adds the assignment to the vehicle's tallies, creating the
// entry if the vehicle was never seeded.
func (s *MemoryStore) RecordAssignment(id string, a Assignment) {
	s.mu.Lock()
	st := s.data[id]
	if st.VehicleID == "" {
		st.VehicleID = id
	}
	st.Assignments++
	st.TotalTravelTime += a.TravelTime
	st.LastAssignment = a
	s.data[id] = st
	s.mu.Unlock()
}

// List returns the matching statuses sorted by vehicle ID.
func (s *MemoryStore) List(f Filter) []Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Status, 0, len(s.data))
	for _, st := range s.data {
		if f.Location != "" && st.Location != f.Location {
			continue
		}
		if f.CallType != "" && st.LastAssignment.CallType != f.CallType {
			continue
		}
		res = append(res, st)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].VehicleID < res[j].VehicleID })
	return res
}
