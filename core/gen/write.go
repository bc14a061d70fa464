package gen

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
)

// WriteNetworkCSV writes the edges in the location_network.csv layout.
func (s Scenario) WriteNetworkCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Start", "End", "Travel Time", "Traffic Delay"}); err != nil {
		return err
	}
	for _, e := range s.Edges {
		rec := []string{
			e.Start,
			e.End,
			strconv.FormatFloat(e.TravelTime, 'f', -1, 64),
			strconv.FormatFloat(e.TrafficDelay, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePrioritiesCSV writes the priority table in the call_priority.csv
// layout, ordered by priority so output is stable across runs.
func (s Scenario) WritePrioritiesCSV(w io.Writer) error {
	types := make([]string, 0, len(s.Priorities))
	for t := range s.Priorities {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		pi, pj := s.Priorities[types[i]], s.Priorities[types[j]]
		if pi != pj {
			return pi < pj
		}
		return types[i] < types[j]
	})
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Call Type", "Priority"}); err != nil {
		return err
	}
	for _, t := range types {
		if err := cw.Write([]string{t, strconv.Itoa(s.Priorities[t])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFleetCSV writes the fleet in the ambulance.csv layout.
func (s Scenario) WriteFleetCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Ambulance Number", "Staging Location"}); err != nil {
		return err
	}
	for _, v := range s.Fleet {
		if err := cw.Write([]string{v.ID, v.Location}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCallsCSV writes the calls in the calls.csv layout. Priority is not a
// column there; loaders resolve it from the priority table.
func (s Scenario) WriteCallsCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Call ID", "Location", "Call Type"}); err != nil {
		return err
	}
	for _, c := range s.Calls {
		if err := cw.Write([]string{strconv.Itoa(c.ID), c.Location, c.Type}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
