package model

import "fmt"

// Vehicle represents an emergency response unit staged at a fixed network
// location. The location is a vertex ID in the road network graph.
type Vehicle struct {
	ID       string
	Location string
}

// Validate checks that the vehicle definition is sound.
func (v Vehicle) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("vehicle id must not be empty")
	}
	if v.Location == "" {
		return fmt.Errorf("vehicle %s: staging location must not be empty", v.ID)
	}
	return nil
}

// Fleet is an insertion-ordered snapshot of the available vehicles. The order
// vehicles were added in is the order they are scanned during dispatch, which
// makes tie-breaking deterministic.
type Fleet struct {
	vehicles []Vehicle
	index    map[string]int
}

// NewFleet returns an empty fleet snapshot.
func NewFleet() *Fleet {
	return &Fleet{index: make(map[string]int)}
}

// Add inserts the vehicle or, if the ID is already known, updates its staging
// location in place without changing its scan position.
func (f *Fleet) Add(v Vehicle) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if i, ok := f.index[v.ID]; ok {
		f.vehicles[i].Location = v.Location
		return nil
	}
	f.index[v.ID] = len(f.vehicles)
	f.vehicles = append(f.vehicles, v)
	return nil
}

// Get returns the vehicle with the given ID.
func (f *Fleet) Get(id string) (Vehicle, bool) {
	i, ok := f.index[id]
	if !ok {
		return Vehicle{}, false
	}
	return f.vehicles[i], true
}

// Len returns the number of vehicles in the snapshot.
func (f *Fleet) Len() int { return len(f.vehicles) }

// Vehicles returns the vehicles in insertion order. The returned slice is a
// copy; mutating it does not affect the snapshot.
func (f *Fleet) Vehicles() []Vehicle {
	out := make([]Vehicle, len(f.vehicles))
	copy(out, f.vehicles)
	return out
}
